package handler

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/danverh/ytgrab-bot/internal/router"
	"github.com/danverh/ytgrab-bot/internal/utils"
	"github.com/danverh/ytgrab-bot/internal/youtube"
	"github.com/danverh/ytgrab-bot/pkg/logger"
)

// handleCallback routes a button press and renders the resulting
// action onto the originating message.
func (h *Handler) handleCallback(ctx context.Context, query *tgbotapi.CallbackQuery) {
	h.bot.Request(tgbotapi.NewCallback(query.ID, ""))

	if query.Message == nil {
		logger.Warn("Callback without an originating message", "token", query.Data)
		return
	}
	chatID := query.Message.Chat.ID
	messageID := query.Message.MessageID

	action := h.router.Route(ctx, query.Data)

	switch a := action.(type) {
	case router.ShowDownload:
		h.editCaption(chatID, messageID, downloadCaption(a), nil)

	case router.ShowAlternateLinks:
		h.editCaption(chatID, messageID, alternateLinksCaption(a.ID), nil)

	case router.ShowMetadataView:
		markup := tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 Back to Download Options", "back_"+string(a.ID))))
		h.editCaption(chatID, messageID, metadataCaption(a), &markup)

	case router.ShowOptionsAgain:
		if len(a.Options) == 0 {
			h.editCaption(chatID, messageID, "❌ No downloadable formats are available for this video.", nil)
			return
		}
		markup := optionsKeyboard(a.ID, a.Options)
		h.editCaption(chatID, messageID, optionsCaption(a.Meta), &markup)

	case router.ErrorAction:
		h.editCaption(chatID, messageID, "❌ "+a.Message, nil)
	}
}

func downloadCaption(a router.ShowDownload) string {
	return fmt.Sprintf(
		"*%s*\n\n"+
			"✅ Your download is ready!\n"+
			"📌 Format: %s\n\n"+
			"⚠️ *Important:*\n"+
			"1. The download link will expire in 6 hours\n"+
			"2. If the link doesn't work, try requesting the video again\n\n"+
			"[🔽 Click here to download](%s)",
		a.Title, a.Label, a.URL)
}

func alternateLinksCaption(id youtube.VideoID) string {
	return fmt.Sprintf(
		"📋 *Alternative Download Options*\n\n"+
			"Use these services to download the video:\n\n"+
			"• [Y2mate](https://www.y2mate.com/youtube/%s)\n"+
			"• [SaveFrom.net](https://en.savefrom.net/#%s)\n"+
			"• [9xbuddy](https://9xbuddy.com/youtube/%s)\n\n"+
			"💡 These external services might have ads but are reliable alternatives.",
		id, youtube.WatchURL(id), id)
}

func metadataCaption(a router.ShowMetadataView) string {
	return fmt.Sprintf(
		"📊 *Video Information*\n\n"+
			"*Title:* %s\n"+
			"*Channel:* %s\n"+
			"*Duration:* %s\n"+
			"*Video ID:* `%s`\n\n"+
			"🔗 *Links:*\n"+
			"• [Watch on YouTube](%s)\n"+
			"• [Share link](%s)",
		a.Title, a.Channel, utils.FormatDuration(a.Duration), a.ID,
		youtube.WatchURL(a.ID), youtube.ShareURL(a.ID))
}

// editCaption edits the menu message in place. The menu is a photo
// message, so captions are the edit surface; when the menu fell back
// to plain text, the caption edit fails and we retry as a text edit.
func (h *Handler) editCaption(chatID int64, messageID int, caption string, markup *tgbotapi.InlineKeyboardMarkup) {
	edit := tgbotapi.NewEditMessageCaption(chatID, messageID, caption)
	edit.ParseMode = tgbotapi.ModeMarkdown
	edit.ReplyMarkup = markup

	if _, err := h.bot.Send(edit); err != nil {
		textEdit := tgbotapi.NewEditMessageText(chatID, messageID, caption)
		textEdit.ParseMode = tgbotapi.ModeMarkdown
		textEdit.ReplyMarkup = markup
		if _, err := h.bot.Send(textEdit); err != nil {
			logger.Error("Failed to edit message", "error", err)
		}
	}
}
