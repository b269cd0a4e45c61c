package notify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stair-ch/foodstoffi/app/menu"
)

func testTarget(url string) *Target {
	return &Target{
		Name: "test",
		URL:  url,
		Persona: TargetPersona{
			Name:      "Chef Stan-dwich",
			AvatarURL: "https://example.com/avatar.png",
		},
		Settings: TargetSettings{
			Enabled:  true,
			Mention:  "@everyone",
			Greeting: "This is today's menu:",
		},
	}
}

func TestBuildEmbed(t *testing.T) {
	dish := menu.Dish{
		Category:      "Tradition",
		Title:         "Riz Casimir",
		IsVegetarian:  true,
		IsBalanced:    true,
		ClimateRating: "a",
		Allergens:     []string{"glutenFree", "milk"},
	}

	embed := buildEmbed(dish)

	if embed.Title != "Tradition" {
		t.Errorf("Expected embed title to be the category, got: %s", embed.Title)
	}
	if embed.Description != "Riz Casimir" {
		t.Errorf("Expected embed description to be the dish title, got: %s", embed.Description)
	}
	if embed.Footer == nil {
		t.Fatal("Expected footer with tags")
	}

	footer := embed.Footer.Text
	for _, expected := range []string{"Vegetarian", "Balanced", "A Climate Impact", "Gluten Free, Milk"} {
		if !strings.Contains(footer, expected) {
			t.Errorf("Expected footer to contain %q, got: %s", expected, footer)
		}
	}
	if strings.Contains(footer, "Vegan") {
		t.Errorf("Expected vegetarian tag only, got: %s", footer)
	}
}

func TestBuildEmbed_NoTags(t *testing.T) {
	embed := buildEmbed(menu.Dish{Category: "Tradition", Title: "Riz Casimir"})

	if embed.Footer != nil {
		t.Errorf("Expected no footer without tags, got: %s", embed.Footer.Text)
	}
}

func TestBuildMessage(t *testing.T) {
	target := testTarget("https://example.com/webhook")
	dishes := []menu.Dish{
		{Category: "Tradition", Title: "Riz Casimir"},
		{Category: "Vegi", Title: "Pasta"},
	}

	message := buildMessage(target, dishes)

	if message.Username != "Chef Stan-dwich" {
		t.Errorf("Expected persona name, got: %s", message.Username)
	}
	if message.Content != "Hiya, @everyone! This is today's menu:" {
		t.Errorf("Unexpected content: %s", message.Content)
	}
	if len(message.Embeds) != 2 {
		t.Fatalf("Expected 2 embeds, got: %d", len(message.Embeds))
	}
	if message.Embeds[0].Description != "Riz Casimir" || message.Embeds[1].Description != "Pasta" {
		t.Errorf("Expected embeds in dish order, got: %s, %s", message.Embeds[0].Description, message.Embeds[1].Description)
	}
}

func TestBuildMessage_NoMention(t *testing.T) {
	target := testTarget("https://example.com/webhook")
	target.Settings.Mention = ""

	message := buildMessage(target, nil)

	if message.Content != "Hiya! This is today's menu:" {
		t.Errorf("Unexpected content without mention: %s", message.Content)
	}
}

func TestNotifier_Send(t *testing.T) {
	var received webhookMessage

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("Expected POST, got: %s", r.Method)
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("Expected JSON content type, got: %s", r.Header.Get("Content-Type"))
		}

		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &received); err != nil {
			t.Errorf("Expected valid JSON body, got: %v", err)
		}

		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	notifier := &Notifier{httpClient: http.DefaultClient, userAgent: "Foodstoffi/test", timeout: 5 * time.Second}

	err := notifier.Send(context.Background(), testTarget(server.URL), []menu.Dish{{Category: "Tradition", Title: "Riz Casimir"}})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(received.Embeds) != 1 {
		t.Errorf("Expected 1 embed to be delivered, got: %d", len(received.Embeds))
	}
}

func TestNotifier_SendFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	notifier := &Notifier{httpClient: http.DefaultClient, userAgent: "Foodstoffi/test", timeout: 5 * time.Second}

	err := notifier.Send(context.Background(), testTarget(server.URL), nil)
	if err == nil {
		t.Error("Expected error for non-success webhook response")
	}
}
