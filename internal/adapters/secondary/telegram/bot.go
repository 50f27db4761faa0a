package telegram

import "context"

type BotInfo struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// GetMe username нужен для реферальных ссылок t.me/<username>?start=<id>
func (c *Client) GetMe(ctx context.Context) (*BotInfo, error) {
	var info BotInfo
	if err := c.call(ctx, "getMe", nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

type BotCommand struct {
	Command     string `json:"command"`
	Description string `json:"description"`
}

// SetMyCommands меню команд в клиенте Telegram
func (c *Client) SetMyCommands(ctx context.Context, commands []BotCommand) error {
	req := struct {
		Commands []BotCommand `json:"commands"`
	}{Commands: commands}

	if err := c.call(ctx, "setMyCommands", req, nil); err != nil {
		return err
	}
	c.log.Info("bot commands registered", "count", len(commands))
	return nil
}
