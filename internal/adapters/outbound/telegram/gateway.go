package telegram

import (
	"context"
	"log"
	"strconv"
	"strings"

	portsout "ticketpay/internal/application/ports/out"
	apperrors "ticketpay/internal/shared_kernel/errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Gateway delivers outbox notifications to Telegram chat groups.
type Gateway struct {
	bot    *tgbotapi.BotAPI
	logger *log.Logger
}

var _ portsout.NotificationGateway = (*Gateway)(nil)

func NewGateway(botToken string, logger *log.Logger) (*Gateway, *apperrors.AppError) {
	bot, err := tgbotapi.NewBotAPI(strings.TrimSpace(botToken))
	if err != nil {
		return nil, apperrors.NewInternal(
			"telegram_auth_failed",
			"failed to authenticate telegram bot",
			map[string]any{"error": err.Error()},
		)
	}

	if logger != nil {
		logger.Printf("telegram gateway initialized bot=%s", bot.Self.UserName)
	}

	return &Gateway{bot: bot, logger: logger}, nil
}

func (g *Gateway) SendText(ctx context.Context, chatID, text string) *apperrors.AppError {
	id, appErr := parseChatID(chatID)
	if appErr != nil {
		return appErr
	}
	if err := ctx.Err(); err != nil {
		return contextError(err)
	}

	message := tgbotapi.NewMessage(id, text)
	if _, err := g.bot.Send(message); err != nil {
		return sendError(err, chatID)
	}

	return nil
}

func (g *Gateway) SendPhoto(ctx context.Context, chatID, caption, photoURL string) *apperrors.AppError {
	id, appErr := parseChatID(chatID)
	if appErr != nil {
		return appErr
	}
	if err := ctx.Err(); err != nil {
		return contextError(err)
	}

	photo := tgbotapi.NewPhoto(id, tgbotapi.FileURL(strings.TrimSpace(photoURL)))
	photo.Caption = caption
	if _, err := g.bot.Send(photo); err != nil {
		return sendError(err, chatID)
	}

	return nil
}

func (g *Gateway) SendMediaGroup(ctx context.Context, chatID, caption string, photoURLs []string) *apperrors.AppError {
	id, appErr := parseChatID(chatID)
	if appErr != nil {
		return appErr
	}
	if err := ctx.Err(); err != nil {
		return contextError(err)
	}

	media := make([]any, 0, len(photoURLs))
	for i, photoURL := range photoURLs {
		photo := tgbotapi.NewInputMediaPhoto(tgbotapi.FileURL(strings.TrimSpace(photoURL)))
		if i == 0 {
			photo.Caption = caption
		}
		media = append(media, photo)
	}

	group := tgbotapi.NewMediaGroup(id, media)
	if _, err := g.bot.SendMediaGroup(group); err != nil {
		return sendError(err, chatID)
	}

	return nil
}

func parseChatID(chatID string) (int64, *apperrors.AppError) {
	id, err := strconv.ParseInt(strings.TrimSpace(chatID), 10, 64)
	if err != nil {
		return 0, apperrors.NewValidation(
			"telegram_chat_id_invalid",
			"telegram chat id must be numeric",
			map[string]any{"chat_id": chatID},
		)
	}

	return id, nil
}

func contextError(err error) *apperrors.AppError {
	return apperrors.NewInternal(
		"telegram_send_canceled",
		"telegram send canceled",
		map[string]any{"error": err.Error()},
	)
}

func sendError(err error, chatID string) *apperrors.AppError {
	return apperrors.NewInternal(
		"telegram_send_failed",
		"failed to deliver telegram message",
		map[string]any{"error": err.Error(), "chat_id": chatID},
	)
}
