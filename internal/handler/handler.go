// Package handler translates Telegram updates into the core pipeline
// and renders the results back through the Bot API.
package handler

import (
	"context"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/danverh/ytgrab-bot/internal/menu"
	"github.com/danverh/ytgrab-bot/internal/router"
	"github.com/danverh/ytgrab-bot/internal/stats"
	"github.com/danverh/ytgrab-bot/internal/utils"
	"github.com/danverh/ytgrab-bot/internal/youtube"
	"github.com/danverh/ytgrab-bot/pkg/logger"
)

type Handler struct {
	bot     *tgbotapi.BotAPI
	fetcher *youtube.Fetcher
	router  *router.Router
}

func New(bot *tgbotapi.BotAPI, fetcher *youtube.Fetcher, r *router.Router) *Handler {
	return &Handler{bot: bot, fetcher: fetcher, router: r}
}

// HandleUpdate is the single entry point for one inbound update.
func (h *Handler) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		h.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.IsCommand():
		h.handleCommand(update.Message)
	case update.Message != nil && update.Message.Text != "":
		h.handleMessage(ctx, update.Message)
	}
}

func (h *Handler) handleCommand(msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		h.handleStart(msg)
	case "help":
		h.handleHelp(msg)
	case "about":
		h.handleAbout(msg)
	case "stats":
		h.handleStats(msg)
	default:
		h.reply(msg.Chat.ID, "Unknown command. Try /help.")
	}
}

func (h *Handler) handleStart(msg *tgbotapi.Message) {
	name := "there"
	if msg.From != nil && msg.From.FirstName != "" {
		name = msg.From.FirstName
	}
	h.reply(msg.Chat.ID, fmt.Sprintf(
		"👋 Hello, %s!\n\n"+
			"I'm a YouTube Downloader Bot. Send me any YouTube link, and I'll provide download options.\n\n"+
			"Just paste a YouTube URL and I'll do the rest!", name))
}

func (h *Handler) handleHelp(msg *tgbotapi.Message) {
	h.replyMarkdown(msg.Chat.ID,
		"📚 *YouTube Downloader Bot Help*\n\n"+
			"*Commands:*\n"+
			"/start - Start the bot\n"+
			"/help - Show this help message\n"+
			"/about - Information about this bot\n"+
			"/stats - Show runtime statistics\n\n"+
			"*How to use:*\n"+
			"1. Simply send me a YouTube video URL\n"+
			"2. I'll analyze the video and provide download options\n"+
			"3. Select your preferred format\n\n"+
			"*Supported links:*\n"+
			"• Regular YouTube URLs\n"+
			"• YouTube Shorts\n"+
			"• Mobile YouTube URLs\n"+
			"• URLs within text")
}

func (h *Handler) handleAbout(msg *tgbotapi.Message) {
	h.replyMarkdown(msg.Chat.ID,
		"ℹ️ *About YouTube Downloader Bot*\n\n"+
			"This bot helps you download videos from YouTube in various formats and qualities.\n\n"+
			"*Features:*\n"+
			"• Download videos in multiple resolutions\n"+
			"• Extract audio from videos\n"+
			"• Support for YouTube Shorts\n\n"+
			"*Technical Info:*\n"+
			"• Built with Go\n"+
			"• Uses yt-dlp for video extraction\n\n"+
			"*Version:* 1.0.0")
}

func (h *Handler) handleStats(msg *tgbotapi.Message) {
	s := stats.Collect()
	h.replyMarkdown(msg.Chat.ID, fmt.Sprintf(
		"📈 *Bot Statistics*\n\n"+
			"*Uptime:* %s\n"+
			"*Goroutines:* %d\n"+
			"*Process RSS:* %s\n"+
			"*Host memory:* %s / %s\n"+
			"*CPU:* %d cores, %.1f%% busy",
		s.Uptime,
		s.Goroutines,
		utils.FormatBytes(s.ProcessRSS),
		utils.FormatBytes(s.HostMemUsed), utils.FormatBytes(s.HostMemTotal),
		s.CPUCount, s.CPUPercent))
}

// handleMessage runs the link flow: recognize, fetch, select, render.
func (h *Handler) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if !youtube.IsYouTubeURL(msg.Text) {
		h.reply(msg.Chat.ID, "This doesn't look like a YouTube URL. Please send a valid YouTube video link.")
		return
	}

	id, ok := youtube.ExtractVideoID(msg.Text)
	if !ok {
		h.reply(msg.Chat.ID, "I couldn't extract a valid YouTube video ID from your message.")
		return
	}

	processing, err := h.bot.Send(tgbotapi.NewMessage(msg.Chat.ID, "🔄 Processing your YouTube video... Please wait."))
	if err != nil {
		logger.Error("Failed to send processing message", "error", err)
		return
	}

	meta, err := h.fetcher.FetchWithRetry(ctx, id)
	if err != nil {
		var extErr *youtube.ExtractionError
		if errors.As(err, &extErr) {
			h.edit(msg.Chat.ID, processing.MessageID,
				"❌ Sorry, I couldn't retrieve information for this video. "+
					"It might be age-restricted, private, or unavailable. Please try again later.")
			return
		}
		h.edit(msg.Chat.ID, processing.MessageID, "❌ An error occurred while processing your request. Please try again later.")
		return
	}

	options := menu.Select(meta)
	if len(options) == 0 {
		h.edit(msg.Chat.ID, processing.MessageID, "❌ No downloadable formats are available for this video.")
		return
	}

	photo := tgbotapi.NewPhoto(msg.Chat.ID, tgbotapi.FileURL(meta.Thumbnail))
	photo.Caption = optionsCaption(meta)
	photo.ParseMode = tgbotapi.ModeMarkdown
	photo.ReplyMarkup = optionsKeyboard(meta.ID, options)

	if _, err := h.bot.Send(photo); err != nil {
		logger.Error("Failed to send options photo", "video", id, "error", err)
		// Thumbnail may be unusable; fall back to a plain text menu.
		text := tgbotapi.NewMessage(msg.Chat.ID, optionsCaption(meta))
		text.ParseMode = tgbotapi.ModeMarkdown
		text.ReplyMarkup = optionsKeyboard(meta.ID, options)
		if _, err := h.bot.Send(text); err != nil {
			logger.Error("Failed to send fallback options message", "video", id, "error", err)
			return
		}
	}

	h.bot.Request(tgbotapi.NewDeleteMessage(msg.Chat.ID, processing.MessageID))
}

// optionsCaption is the menu header shown above the keyboard.
func optionsCaption(meta *youtube.Metadata) string {
	return fmt.Sprintf(
		"*%s*\n\n"+
			"👤 *Channel:* %s\n"+
			"⏱️ *Duration:* %s\n\n"+
			"Choose your preferred format to download:",
		meta.Title, meta.Channel, utils.FormatDuration(meta.Duration))
}

// optionsKeyboard builds one button per option plus the fixed
// links/info rows.
func optionsKeyboard(id youtube.VideoID, options []menu.Option) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(options)+2)
	for _, opt := range options {
		label := fmt.Sprintf("%s - %s", opt.Label, opt.SizeLabel)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, opt.Token)))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🔗 Get Direct Links", "links_"+string(id))))
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("ℹ️ Video Info", "info_"+string(id))))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func (h *Handler) reply(chatID int64, text string) {
	if _, err := h.bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		logger.Error("Failed to send message", "error", err)
	}
}

func (h *Handler) replyMarkdown(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := h.bot.Send(msg); err != nil {
		logger.Error("Failed to send message", "error", err)
	}
}

func (h *Handler) edit(chatID int64, messageID int, text string) {
	if _, err := h.bot.Send(tgbotapi.NewEditMessageText(chatID, messageID, text)); err != nil {
		logger.Error("Failed to edit message", "error", err)
	}
}
