// Telegram front end: send Hindi text, get the grammar report back as a
// message. Runs the same engine as the HTTP service, without quotas or
// history.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"vakyashuddhi/api/internal/grammar"
	"vakyashuddhi/api/internal/hunspell"
	"vakyashuddhi/api/internal/infer"
	"vakyashuddhi/api/internal/infer/gemini"
	"vakyashuddhi/api/internal/infer/hf"
)

func mustEnv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("missing env %s", k)
	}
	return v
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func main() {
	tgToken := mustEnv("TELEGRAM_BOT_TOKEN")

	speller, err := hunspell.New(
		getenv("HUNSPELL_DIC", "data/hi_IN.dic"),
		getenv("HUNSPELL_AFF", "data/hi_IN.aff"),
	)
	if err != nil {
		log.Fatalf("load dictionary: %v", err)
	}

	var corrector grammar.Corrector
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		corrector = infer.NewCachedCorrector(gemini.New(key, getenv("GEMINI_MODEL", "gemini-2.5-flash")))
	} else if url := os.Getenv("HF_CORRECT_URL"); url != "" {
		corrector = infer.NewCachedCorrector(hf.New(url, "", os.Getenv("HF_TOKEN")))
	} else {
		log.Print("no model engine configured, running dictionary-only")
	}
	checker := grammar.NewChecker(speller, corrector)

	bot, err := tgbotapi.NewBotAPI(tgToken)
	if err != nil {
		log.Fatal(err)
	}
	bot.Debug = false
	log.Printf("bot authorized as @%s", bot.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	for upd := range bot.GetUpdatesChan(u) {
		handleUpdate(bot, checker, upd)
	}
}

func handleUpdate(bot *tgbotapi.BotAPI, checker *grammar.Checker, upd tgbotapi.Update) {
	if upd.Message == nil {
		return
	}
	cid := upd.Message.Chat.ID

	if upd.Message.IsCommand() {
		switch upd.Message.Command() {
		case "start":
			send(bot, cid, "मुझे हिंदी वाक्य भेजें, मैं व्याकरण जाँच कर त्रुटियाँ लौटाऊँगा।")
		case "health":
			send(bot, cid, "✅ OK")
		default:
			send(bot, cid, "Unknown command")
		}
		return
	}

	text := strings.TrimSpace(upd.Message.Text)
	if text == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	report := checker.Check(ctx, text)
	send(bot, cid, formatReport(report))
}

func formatReport(r grammar.Report) string {
	if len(r.Errors) == 0 {
		return "✅ कोई त्रुटि नहीं मिली।"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d issue(s) found:\n", len(r.Errors))
	for _, e := range r.Errors {
		fmt.Fprintf(&b, "\n%d. [%s] %s", e.ID, e.Type, e.Message)
		if e.Suggestion != "" {
			fmt.Fprintf(&b, "\n   %s → %s", e.Original, e.Suggestion)
		} else {
			fmt.Fprintf(&b, "\n   %s", e.Original)
		}
	}
	fmt.Fprintf(&b, "\n\nGrammar %d · Fluency %d · Clarity %d",
		r.Stats.Grammar, r.Stats.Fluency, r.Stats.Clarity)
	out := b.String()
	if len(out) > 3900 {
		out = out[:3900] + "…"
	}
	return out
}

func send(bot *tgbotapi.BotAPI, chatID int64, text string) {
	_, _ = bot.Send(tgbotapi.NewMessage(chatID, text))
}
