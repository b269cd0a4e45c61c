package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/stair-ch/foodstoffi/app/cfg"
	"github.com/stair-ch/foodstoffi/app/menu"
)

const embedColor = 0x2ECC71

// Notifier delivers a day's dishes to webhook targets, one embed per
// dish, under the target's persona identity.
type Notifier struct {
	httpClient *http.Client
	userAgent  string
	timeout    time.Duration
}

func NewNotifier(httpClient *http.Client) *Notifier {
	cfg := cfg.Get()

	return &Notifier{
		httpClient: httpClient,
		userAgent:  cfg.UserAgent,
		timeout:    time.Duration(cfg.FetchTimeout) * time.Second,
	}
}

// Send posts the dishes to a single target. A failure affects that
// target only; the caller decides whether to continue with others.
func (n *Notifier) Send(ctx context.Context, target *Target, dishes []menu.Dish) error {
	message := buildMessage(target, dishes)

	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to encode webhook message: %w", err)
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "POST", target.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", n.userAgent)

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to deliver webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	slog.Debug("Notification delivered", "target", target.Name, "dishes", len(dishes))

	return nil
}

func buildMessage(target *Target, dishes []menu.Dish) webhookMessage {
	content := target.Settings.Greeting
	if target.Settings.Mention != "" {
		content = fmt.Sprintf("Hiya, %s! %s", target.Settings.Mention, content)
	} else {
		content = "Hiya! " + content
	}

	embeds := make([]webhookEmbed, 0, len(dishes))
	for _, dish := range dishes {
		embeds = append(embeds, buildEmbed(dish))
	}

	return webhookMessage{
		Username:  target.Persona.Name,
		AvatarURL: target.Persona.AvatarURL,
		Content:   content,
		Embeds:    embeds,
	}
}

func buildEmbed(dish menu.Dish) webhookEmbed {
	// Casers are stateful, one per call
	ratingCaser := cases.Title(language.English)

	var tags []string

	if dish.IsVegan {
		tags = append(tags, "\U0001F331 Vegan")
	} else if dish.IsVegetarian {
		tags = append(tags, "\U0001F33F Vegetarian")
	}
	if dish.IsBalanced {
		tags = append(tags, "⚖️ Balanced")
	}
	if dish.ClimateRating != "" {
		tags = append(tags, fmt.Sprintf("\U0001F30D %s Climate Impact", ratingCaser.String(dish.ClimateRating)))
	}
	if labels := dish.AllergenLabels(); len(labels) > 0 {
		tags = append(tags, "\U0001F6AB "+strings.Join(labels, ", "))
	}

	embed := webhookEmbed{
		Title:       dish.Category,
		Description: dish.Title,
		Color:       embedColor,
	}
	if len(tags) > 0 {
		embed.Footer = &webhookFooter{Text: strings.Join(tags, " | ")}
	}

	return embed
}
