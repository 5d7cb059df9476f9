// Package telegram routes bot updates: commands, engine switching and
// damage photos.
package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"claims-assistant/api/internal/assess"
	"claims-assistant/api/internal/store"
	"claims-assistant/api/internal/vision"
	"claims-assistant/api/internal/vision/gemini"
	"claims-assistant/api/internal/vision/groq"
)

const welcomeMessage = `Welcome to the Car Damage Assessor! 🚗

I can help you assess vehicle damage by analyzing photos. Here's how:

1️⃣ Send a clear photo of the damaged vehicle
2️⃣ I'll analyze it and provide a detailed damage assessment
3️⃣ You'll receive cost estimates for repairs

To get started, just send a photo of the damaged vehicle.`

type Router struct {
	Bot        *tgbotapi.BotAPI
	EngManager *vision.Manager
	Service    *assess.Service
	Repo       *store.AssessmentRepo // optional result cache

	Engines Engines
}

// Engines holds the prototype engine per backend; /engine copies one so
// a per-chat model override never leaks into other chats.
type Engines struct {
	Groq   *groq.Engine
	Gemini *gemini.Engine
}

func (r *Router) HandleUpdate(upd tgbotapi.Update) {
	if upd.Message == nil {
		return
	}
	cid := upd.Message.Chat.ID

	if upd.Message.IsCommand() {
		r.handleCommand(upd)
		return
	}
	if len(upd.Message.Photo) > 0 {
		r.acceptPhoto(*upd.Message)
		return
	}
	r.send(cid, "I can only process text messages or images. Please send a photo of the damaged vehicle for assessment.")
}

func (r *Router) handleCommand(upd tgbotapi.Update) {
	cid := upd.Message.Chat.ID
	switch upd.Message.Command() {
	case "start":
		r.send(cid, welcomeMessage)
	case "health":
		r.send(cid, "✅ OK")
	case "engine":
		r.handleEngineCommand(cid, upd.Message.Text)
	default:
		r.send(cid, welcomeMessage)
	}
}

// handleEngineCommand switches the vision backend for this chat.
// Formats:
//
//	/engine groq [model]
//	/engine gemini [model]
func (r *Router) handleEngineCommand(chatID int64, cmd string) {
	args := strings.Fields(strings.TrimSpace(strings.TrimPrefix(cmd, "/engine")))
	if len(args) == 0 {
		cur := r.EngManager.Get(chatID)
		r.send(chatID, "Current engine: "+cur.Name()+" ("+cur.GetModel()+")"+
			"\nUsage:\n/engine groq [model]\n/engine gemini [model]")
		return
	}
	name := strings.ToLower(args[0])
	var mdl string
	if len(args) > 1 {
		mdl = strings.TrimSpace(args[1])
	}

	var eng vision.Engine
	switch name {
	case "groq":
		e := *r.Engines.Groq
		if mdl != "" {
			e.SetModel(mdl)
		}
		eng = &e
	case "gemini":
		e := *r.Engines.Gemini
		if mdl != "" {
			e.SetModel(mdl)
		}
		eng = &e
	default:
		r.send(chatID, "Unknown engine. Available: groq | gemini")
		return
	}

	r.EngManager.Set(chatID, eng)
	r.send(chatID, "Switched to "+name+" ("+eng.GetModel()+")")
}

func (r *Router) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	_, _ = r.Bot.Send(msg)
}

func (r *Router) sendMarkdown(chatID int64, text string) {
	if len(text) > 3900 {
		text = text[:3900] + "…"
	}
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	_, _ = r.Bot.Send(msg)
}

func (r *Router) sendError(chatID int64, err error) {
	r.send(chatID, fmt.Sprintf("Sorry, I couldn't analyze this image: %v. Please make sure it clearly shows the vehicle damage and try again.", err))
}
