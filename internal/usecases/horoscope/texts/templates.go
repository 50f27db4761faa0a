package texts

// Онбординг
const (
	AskName = "Привет! 🌟 Я твой личный астролог.\n\n" +
		"Как тебя зовут?"
	NameInvalid = "❌ Имя не должно быть пустым и длиннее 64 символов.\n" +
		"Как тебя зовут?"
	AskBirthDate = "Привет! 🌟 Я твой личный астролог.\n\n" +
		"Введи дату рождения в формате <b>ДД.ММ.ГГГГ</b>, например 15.06.1990"
	askBirthDateNamed = "Приятно познакомиться, <b>%s</b>! ✨\n\n" +
		"Теперь введи дату рождения в формате <b>ДД.ММ.ГГГГ</b>, например 15.06.1990"
	BirthDateFormatError = "❌ Неверный формат даты.\n" +
		"Введи дату в формате <b>ДД.ММ.ГГГГ</b>, например 15.06.1990"
	BirthDateFutureError = "❌ Дата рождения не может быть в будущем.\n" +
		"Введи дату в формате <b>ДД.ММ.ГГГГ</b>"
	askGender = "Твой знак зодиака: %s <b>%s</b>\n\n" +
		"Укажи свой пол или просто подтверди знак 👇"
	UseButtons            = "Пожалуйста, выбери вариант кнопкой ниже 👇"
	RegistrationCompleted = "✨ Готово! Профиль сохранён.\n\n" +
		"Каждый день тебя ждёт персональный гороскоп."
	ChangeBirthDatePrompt = "Введи новую дату рождения в формате <b>ДД.ММ.ГГГГ</b>"
	birthDateUpdated      = "✅ Дата рождения обновлена. Твой знак: %s <b>%s</b>"
)

// Меню
const (
	welcomeBack          = "С возвращением, <b>%s</b>! 🌙"
	WelcomeBackAnonymous = "С возвращением! 🌙"
	MainMenu             = "🔮 <b>Главное меню</b>\n\n" +
		"Выбери, что тебя интересует:"
	SettingsMenu = "⚙️ <b>Настройки</b>\n\n" +
		"Что хочешь изменить?"
	ChooseSign      = "Выбери свой знак зодиака:"
	signChanged     = "✅ Знак изменён на %s <b>%s</b>"
	ChooseLanguage  = "Выбери язык:"
	LanguageChanged = "✅ Язык сохранён: русский"
	FunMenu         = "🎲 <b>Развлечения</b>\n\n" +
		"Испытай удачу:"
	Help = "🔮 <b>Что я умею</b>\n\n" +
		"/horoscope - гороскоп на сегодня\n" +
		"/menu - главное меню\n" +
		"/profile - твой профиль\n" +
		"/settings - настройки\n" +
		"/donate - поддержать проект\n" +
		"/help - эта справка"
	unknownCommand = "Не знаю команду %s 🤷\nЗагляни в /help"
	TryLater       = "⏳ Звёзды перегружены, попробуй через минуту."
	ActionExpired  = "Кнопка устарела"
)

// Развлечения
const (
	fortune = "🥠 <b>Твоё предсказание</b>\n\n" +
		"<i>%s</i>"
	OracleAsk = "🎱 Задай вопрос, на который можно ответить «да» или «нет».\n" +
		"Вопрос должен заканчиваться знаком «?»"
	OracleNotQuestion = "🤔 Это не похоже на вопрос.\n" +
		"Вопрос должен заканчиваться знаком «?»"
	oracleAnswer = "❓ <i>%s</i>\n\n" +
		"🎱 <b>%s</b>"
)

// Донат
const (
	donate = "💫 <b>Поддержать проект</b>\n\n" +
		"Если бот тебе нравится, можно отправить любую сумму на кошелёк:\n\n" +
		"<code>%s</code>\n\n" +
		"Спасибо! 🙏"
	DonateUnavailable = "💫 Спасибо за желание поддержать! Реквизиты скоро появятся."
)

// Рассылка и алерты
const (
	dailyBroadcastHeader = "☀️ <b>Доброе утро!</b> Твой гороскоп на сегодня:\n\n"
	broadcastAlert       = "⚠️ Рассылка гороскопов: отправлено %d, ошибок %d"
	broadcastListAlert   = "🔥 Рассылка гороскопов не запущена: %s"
)

// Кнопки
const (
	ButtonHoroscope     = "🔮 Гороскоп на сегодня"
	ButtonFun           = "🎲 Развлечения"
	ButtonProfile       = "👤 Профиль"
	ButtonSettings      = "⚙️ Настройки"
	ButtonDonate        = "💫 Поддержать"
	ButtonBack          = "⬅️ Назад"
	ButtonMainMenu      = "🏠 Главное меню"
	ButtonChangeSign    = "♈ Сменить знак"
	ButtonChangeBirth   = "📅 Сменить дату рождения"
	ButtonChangeLang    = "🌐 Язык"
	ButtonFortune       = "🥠 Предсказание"
	ButtonYesNo         = "🎱 Да или нет"
	ButtonGenderMale    = "👨 Мужской"
	ButtonGenderFemale  = "👩 Женский"
	ButtonConfirmSign   = "✅ Подтвердить знак"
	ButtonLanguageRU    = "🇷🇺 Русский"
	ButtonShareReferral = "📨 Пригласить друга"
)

// BotCommand команда для меню бота
type BotCommand struct {
	Command     string
	Description string
}

// BotCommands команды, которые регистрируются в Telegram при старте
var BotCommands = []BotCommand{
	{Command: "start", Description: "Начать"},
	{Command: "horoscope", Description: "Гороскоп на сегодня"},
	{Command: "menu", Description: "Главное меню"},
	{Command: "profile", Description: "Мой профиль"},
	{Command: "settings", Description: "Настройки"},
	{Command: "donate", Description: "Поддержать проект"},
	{Command: "help", Description: "Помощь"},
}
