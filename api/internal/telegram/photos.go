package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"claims-assistant/api/internal/assess"
	"claims-assistant/api/internal/store"
	"claims-assistant/api/internal/util"
)

const cacheMaxAge = 24 * time.Hour

func (r *Router) acceptPhoto(msg tgbotapi.Message) {
	cid := msg.Chat.ID
	r.send(cid, "📸 I've received your photo! Processing damage assessment... This will take a moment.")

	ph := msg.Photo[len(msg.Photo)-1]
	file, err := r.Bot.GetFile(tgbotapi.FileConfig{FileID: ph.FileID})
	if err != nil {
		r.send(cid, "Sorry, I couldn't download this image. Please try again with a different photo.")
		return
	}
	url := fmt.Sprintf("https://api.telegram.org/file/bot%s/%s", r.Bot.Token, file.FilePath)
	img, err := download(url)
	if err != nil {
		r.send(cid, "Sorry, I couldn't download this image. Please try again with a different photo.")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 180*time.Second)
	defer cancel()

	doc := r.cachedAssessment(ctx, cid, img)
	if doc == nil {
		doc, err = r.Service.AssessDamage(ctx, img, assess.Options{
			ChatID: cid,
			Source: "telegram",
		})
		if err != nil {
			r.sendError(cid, err)
			return
		}
	}

	r.sendMarkdown(cid, FormatAssessment(doc))
}

// cachedAssessment answers a resubmitted photo from history instead of
// a second paid model call. Any cache trouble just means a fresh run.
func (r *Router) cachedAssessment(ctx context.Context, cid int64, img []byte) *assess.Document {
	if r.Repo == nil {
		return nil
	}
	eng := r.EngManager.Get(cid)
	row, err := r.Repo.FindByHash(ctx, util.SHA256Hex(img), eng.Name(), eng.GetModel(), cacheMaxAge)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Printf("telegram: cache lookup: %v", err)
		}
		return nil
	}
	doc, err := assess.ParseDocument(row.Result)
	if err != nil {
		log.Printf("telegram: cached result unparseable: %v", err)
		return nil
	}
	log.Printf("telegram: cache hit for chat %d", cid)
	return doc
}

func download(url string) ([]byte, error) {
	cl := &http.Client{Timeout: 60 * time.Second}
	resp, err := cl.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
