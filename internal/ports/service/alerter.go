package service

import "context"

// IAlerterService алерты для дежурных: сбои рассылки и фоновых задач
type IAlerterService interface {
	SendAlert(ctx context.Context, message string) error
}
