package notify

import (
	"encoding/json"

	"fixtrack/backend/internal/models"
	"fixtrack/backend/internal/storage"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// TelegramRelay forwards assignment notifications to workers who linked a
// Telegram chat. Enabled only when a bot token is configured; the service
// runs fine without it.
type TelegramRelay struct {
	Bot     *tgbotapi.BotAPI
	Storage storage.Storage
}

// NewTelegramRelay connects the bot API with the given token.
func NewTelegramRelay(token string, s storage.Storage) (*TelegramRelay, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	log.WithField("bot", bot.Self.UserName).Info("telegram relay connected")
	return &TelegramRelay{Bot: bot, Storage: s}, nil
}

// Run consumes the assignment pub/sub subscription and relays each
// notification to the worker's linked chat. Blocks until sub closes.
func (r *TelegramRelay) Run(sub *redis.PubSub) {
	for msg := range sub.Channel() {
		var n models.AssignmentNotification
		if err := json.Unmarshal([]byte(msg.Payload), &n); err != nil {
			log.WithError(err).Warn("telegram relay: bad notification payload")
			continue
		}
		r.deliver(n)
	}
}

func (r *TelegramRelay) deliver(n models.AssignmentNotification) {
	worker, err := r.Storage.GetUserByID(n.WorkerID)
	if err != nil || worker == nil || worker.TelegramChatID == 0 {
		return
	}
	if _, err := r.Bot.Send(tgbotapi.NewMessage(worker.TelegramChatID, n.Message)); err != nil {
		log.WithError(err).WithField("worker_id", n.WorkerID).Warn("telegram relay: send failed")
	}
}

// ListenForLinks processes bot updates so a worker can link their chat by
// sending "/link <user-id>". Blocks; run in its own goroutine.
func (r *TelegramRelay) ListenForLinks() {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	for update := range r.Bot.GetUpdatesChan(u) {
		if update.Message == nil || !update.Message.IsCommand() {
			continue
		}
		if update.Message.Command() != "link" {
			continue
		}

		userID := update.Message.CommandArguments()
		chatID := update.Message.Chat.ID

		reply := "Linked. You will receive assignment notifications here."
		worker, err := r.Storage.GetUserByID(userID)
		switch {
		case err != nil:
			reply = "Something went wrong, try again later."
		case worker == nil || worker.Role != models.RoleWorker:
			reply = "Unknown worker id."
		default:
			worker.TelegramChatID = chatID
			if err := r.Storage.UpdateUser(worker); err != nil {
				log.WithError(err).WithField("worker_id", userID).Error("telegram relay: link failed")
				reply = "Something went wrong, try again later."
			}
		}

		if _, err := r.Bot.Send(tgbotapi.NewMessage(chatID, reply)); err != nil {
			log.WithError(err).Warn("telegram relay: reply failed")
		}
	}
}
