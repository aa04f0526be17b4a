package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	app "weld-score/internal/application"
	"weld-score/internal/container"
	"weld-score/internal/domain/entity"
)

// запас сверх времени проверки на перекраску дефектов и сохранение
const checkGrace = 5 * time.Second

// Bot представляет Telegram-бота
type Bot struct {
	api       *tgbotapi.BotAPI
	container *container.Container
	logger    *zap.Logger
}

// NewBot создаёт нового бота
func NewBot(token string, c *container.Container, logger *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	logger.Info("authorized on account", zap.String("username", api.Self.UserName))

	return &Bot{
		api:       api,
		container: c,
		logger:    logger,
	}, nil
}

// Run запускает основной цикл обработки сообщений до отмены ctx
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

// handleMessage обрабатывает входящее сообщение
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	trainee, err := b.container.TraineeService.Get(ctx, msg.From.ID, msg.Chat.ID)
	if err != nil {
		b.logger.Error("get trainee", zap.Int64("user_id", msg.From.ID), zap.Error(err))
		return
	}

	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}

	if len(msg.Photo) > 0 && trainee.State == entity.StateAwaitingBeadPhoto {
		b.handlePhoto(ctx, msg)
		return
	}

	if len(msg.Photo) > 0 {
		b.sendMessage(msg.Chat.ID, msgPhotoWithoutBeads)
		return
	}

	b.sendMessage(msg.Chat.ID, msgSendCommand)
}

// handleCommand обрабатывает команды бота
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	userID, chatID := msg.From.ID, msg.Chat.ID

	switch msg.Command() {
	case "start":
		b.setState(ctx, userID, chatID, entity.StateMainMenu)
		b.sendMessage(chatID, msgStart)
		b.sendCurrentPanel(ctx, userID, chatID)

	case "help":
		b.sendMessage(chatID, msgHelp)

	case "check":
		b.handleCheck(ctx, userID, chatID)

	case "score":
		session, ok := b.session(ctx, userID, chatID)
		if !ok {
			return
		}
		panel, err := session.CurrentPanel()
		if err != nil {
			b.sendSessionError(chatID, err)
			return
		}
		b.sendMessage(chatID, formatScore(panel.Title(), session.CurrentScore()))

	case "overall":
		session, ok := b.session(ctx, userID, chatID)
		if !ok {
			return
		}
		overall, err := session.OverallScore(ctx)
		if err != nil {
			b.logger.Error("overall score", zap.Int64("user_id", userID), zap.Error(err))
			b.sendMessage(chatID, msgInternalError)
			return
		}
		b.sendMessage(chatID, formatScore("Итог по всем панелям", overall))

	case "next":
		b.handleNext(ctx, userID, chatID)

	case "reset":
		b.handleReset(ctx, userID, chatID)

	case "travel":
		b.handleTravel(ctx, userID, chatID, msg.CommandArguments())

	case "beads":
		b.setState(ctx, userID, chatID, entity.StateAwaitingBeadPhoto)
		b.sendMessage(chatID, msgAwaitingPhoto)

	case "cancel":
		b.setState(ctx, userID, chatID, entity.StateMainMenu)
		b.sendMessage(chatID, msgCancelled)

	default:
		b.sendMessage(chatID, msgUnknownCommand)
	}
}

// handleCheck запускает проход сканера и присылает баллы, когда он закончится
func (b *Bot) handleCheck(ctx context.Context, userID, chatID int64) {
	session, ok := b.session(ctx, userID, chatID)
	if !ok {
		return
	}
	panel, err := session.CurrentPanel()
	if err != nil {
		b.sendSessionError(chatID, err)
		return
	}

	ev, seconds, err := session.EvaluateCurrent(ctx)
	if err != nil {
		b.sendSessionError(chatID, err)
		return
	}
	b.setState(ctx, userID, chatID, entity.StateScanning)
	b.sendMessage(chatID, formatChecking(panel, seconds))

	go func() {
		waitCtx, cancel := context.WithTimeout(ctx, time.Duration(seconds*float64(time.Second))+checkGrace)
		defer cancel()
		defer b.setState(context.Background(), userID, chatID, entity.StateMainMenu)

		stats, err := ev.Wait(waitCtx)
		if errors.Is(err, app.ErrEvaluationCancelled) {
			b.sendMessage(chatID, msgCheckFailed)
			return
		}
		if err != nil {
			b.logger.Warn("wait evaluation", zap.Stringer("panel_id", ev.PanelID()), zap.Error(err))
			b.sendMessage(chatID, msgCheckFailed)
			return
		}
		b.sendMessage(chatID, formatScore(panel.Title(), entity.NewWeldingScore(stats)))
	}()
}

func (b *Bot) handleNext(ctx context.Context, userID, chatID int64) {
	session, ok := b.session(ctx, userID, chatID)
	if !ok {
		return
	}
	result, err := session.Advance(ctx)
	if err != nil {
		b.sendSessionError(chatID, err)
		return
	}

	switch result {
	case app.AdvanceNext:
		b.sendCurrentPanel(ctx, userID, chatID)
	case app.AdvanceFinished:
		b.sendMessage(chatID, msgFinished)
		overall, err := session.OverallScore(ctx)
		if err != nil {
			b.logger.Error("overall score", zap.Int64("user_id", userID), zap.Error(err))
			return
		}
		b.sendMessage(chatID, formatScore("Итог по всем панелям", overall))
	case app.AdvanceAlreadyFinished:
		b.sendMessage(chatID, msgAlreadyFinished)
	}
}

// handleReset заново подаёт текущую панель, а после финиша начинает сессию сначала
func (b *Bot) handleReset(ctx context.Context, userID, chatID int64) {
	session, ok := b.session(ctx, userID, chatID)
	if !ok {
		return
	}

	if session.Finished() {
		if err := session.Restart(ctx); err != nil {
			b.sendSessionError(chatID, err)
			return
		}
		b.sendMessage(chatID, msgRestarted)
		b.sendCurrentPanel(ctx, userID, chatID)
		return
	}

	if err := session.ResetCurrent(); err != nil {
		b.sendSessionError(chatID, err)
		return
	}
	b.sendCurrentPanel(ctx, userID, chatID)
}

func (b *Bot) handleTravel(ctx context.Context, userID, chatID int64, arg string) {
	seconds, err := parseTravel(arg)
	if err != nil {
		b.sendMessage(chatID, msgTravelUsage)
		return
	}
	session, ok := b.session(ctx, userID, chatID)
	if !ok {
		return
	}
	if err := session.RecordTravel(seconds); err != nil {
		b.sendSessionError(chatID, err)
		return
	}
	panel, err := session.CurrentPanel()
	if err != nil {
		b.sendSessionError(chatID, err)
		return
	}
	b.sendMessage(chatID, formatTravel(seconds, panel.Travel.Len()))
}

// handlePhoto находит валики на фото и добавляет их на текущую панель
func (b *Bot) handlePhoto(ctx context.Context, msg *tgbotapi.Message) {
	userID, chatID := msg.From.ID, msg.Chat.ID
	b.sendMessage(chatID, msgProcessing)

	session, ok := b.session(ctx, userID, chatID)
	if !ok {
		b.setState(ctx, userID, chatID, entity.StateMainMenu)
		return
	}

	// Получаем файл с максимальным разрешением
	photo := msg.Photo[len(msg.Photo)-1]

	imageData, err := b.downloadFile(ctx, photo.FileID)
	if err != nil {
		b.logger.Error("download photo", zap.Int64("user_id", userID), zap.Error(err))
		b.sendMessage(chatID, msgProcessingError)
		b.setState(ctx, userID, chatID, entity.StateMainMenu)
		return
	}

	out, err := b.container.InspectionService.ProcessBeadPhoto(ctx, userID, chatID, session, imageData)
	if err != nil {
		b.logger.Error("process bead photo", zap.Int64("user_id", userID), zap.Error(err))
		b.sendMessage(chatID, msgProcessingError)
		return
	}

	if out.Markers == 0 {
		b.sendMessage(chatID, msgNoBeads)
		return
	}

	text := formatBeads(out.Markers, out.Result.ImageWidth, out.Result.ImageHeight)
	if len(out.Highlighted) == 0 {
		b.sendMessage(chatID, text)
		return
	}
	b.sendPhoto(chatID, out.Highlighted, text)
}

func (b *Bot) session(ctx context.Context, userID, chatID int64) (*app.Session, bool) {
	session, err := b.container.TrainingService.Session(ctx, userID)
	if err != nil {
		b.logger.Error("create session", zap.Int64("user_id", userID), zap.Error(err))
		b.sendMessage(chatID, msgInternalError)
		return nil, false
	}
	return session, true
}

func (b *Bot) sendCurrentPanel(ctx context.Context, userID, chatID int64) {
	session, ok := b.session(ctx, userID, chatID)
	if !ok {
		return
	}
	panel, err := session.CurrentPanel()
	if err != nil {
		b.sendSessionError(chatID, err)
		return
	}
	b.sendMessage(chatID, formatPanel(panel, session.Index(), session.Len()))
}

func (b *Bot) sendSessionError(chatID int64, err error) {
	switch {
	case errors.Is(err, app.ErrNoPanels):
		b.sendMessage(chatID, msgNoPanels)
	case errors.Is(err, app.ErrSessionFinished):
		b.sendMessage(chatID, msgAlreadyFinished)
	default:
		b.logger.Error("session", zap.Error(err))
		b.sendMessage(chatID, msgInternalError)
	}
}

func (b *Bot) setState(ctx context.Context, userID, chatID int64, state entity.TraineeState) {
	if _, err := b.container.TraineeService.SetState(ctx, userID, chatID, state); err != nil {
		b.logger.Error("set trainee state", zap.Int64("user_id", userID), zap.Error(err))
	}
}

// downloadFile скачивает файл из Telegram
func (b *Bot) downloadFile(ctx context.Context, fileID string) ([]byte, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, file.Link(b.api.Token), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download file: unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return data, nil
}

// sendMessage отправляет текстовое сообщение
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("send message", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

// sendPhoto отправляет картинку с подписью
func (b *Bot) sendPhoto(chatID int64, image []byte, caption string) {
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: "beads.jpg", Bytes: image})
	photo.Caption = caption
	if _, err := b.api.Send(photo); err != nil {
		b.logger.Error("send photo", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}
