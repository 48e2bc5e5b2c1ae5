package httpapi

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-dashboard/internal/dashboard"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

var validate = validator.New()

// keepAliveInterval paces SSE comments so a disconnected client is noticed
// without waiting for the next view.
var keepAliveInterval = 15 * time.Second

// Lookuper performs stateless one-shot weather lookups.
type Lookuper interface {
	Lookup(ctx context.Context, city string) (weather.WeatherSnapshot, error)
}

// RegisterRoutes wires the dashboard page and API handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, board *dashboard.Dashboard, service Lookuper) {
	app.Get("/", func(c *fiber.Ctx) error {
		return renderPage(c, board.View())
	})

	// Plain form submission from the page.
	app.Post("/search", func(c *fiber.Ctx) error {
		board.UpdateDraft(c.FormValue("city"))
		board.Submit()
		return c.Redirect("/", fiber.StatusSeeOther)
	})

	v1 := app.Group("/api/v1")

	v1.Get("/dashboard", func(c *fiber.Ctx) error {
		return c.JSON(newViewResponse(board.View()))
	})

	v1.Put("/dashboard/draft", func(c *fiber.Ctx) error {
		var req draftRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid draft body")
		}
		board.UpdateDraft(req.Text)
		return c.JSON(newViewResponse(board.View()))
	})

	v1.Post("/dashboard/submit", func(c *fiber.Ctx) error {
		accepted := board.Submit()
		return c.JSON(submitResponse{
			Accepted: accepted,
			View:     newViewResponse(board.View()),
		})
	})

	v1.Get("/dashboard/events", func(c *fiber.Ctx) error {
		views, cancel := board.Subscribe()

		c.Set(fiber.HeaderContentType, "text/event-stream")
		c.Set(fiber.HeaderCacheControl, "no-cache")
		c.Set(fiber.HeaderConnection, "keep-alive")
		c.Set("X-Accel-Buffering", "no")

		c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
			defer cancel()
			ticker := time.NewTicker(keepAliveInterval)
			defer ticker.Stop()

			for {
				select {
				case v, ok := <-views:
					if !ok {
						return
					}
					if err := writeEvent(w, "view", newViewResponse(v)); err != nil {
						return
					}
				case <-ticker.C:
					if _, err := w.WriteString(": keepalive\n\n"); err != nil {
						return
					}
				}
				// A failed flush means the client went away.
				if err := w.Flush(); err != nil {
					return
				}
			}
		})
		return nil
	})

	v1.Get("/weather/current", func(c *fiber.Ctx) error {
		q := lookupQuery{City: strings.TrimSpace(c.Query("city"))}
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "query parameter 'city' is required")
		}

		snapshot, err := service.Lookup(c.UserContext(), q.City)
		if err != nil {
			switch {
			case errors.Is(err, weather.ErrEmptyQuery):
				return fiber.NewError(fiber.StatusBadRequest, "query parameter 'city' is required")
			case weather.Classify(err) == weather.FailureLocationNotFound:
				return fiber.NewError(fiber.StatusNotFound, weather.MessageLocationNotFound)
			default:
				return fiber.NewError(fiber.StatusBadGateway, weather.MessageFetchFailed)
			}
		}

		return c.JSON(fiber.Map{
			"city":    q.City,
			"weather": snapshot,
		})
	})
}

// lookupQuery holds query parameters for the one-shot lookup endpoint.
type lookupQuery struct {
	City string `validate:"required,max=256"`
}

type draftRequest struct {
	Text string `json:"text"`
}

type viewResponse struct {
	dashboard.View
	Panel dashboard.Panel `json:"panel"`
}

func newViewResponse(v dashboard.View) viewResponse {
	return viewResponse{View: v, Panel: v.Panel()}
}

type submitResponse struct {
	Accepted bool         `json:"accepted"`
	View     viewResponse `json:"view"`
}

func writeEvent(w *bufio.Writer, event string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, b); err != nil {
		return err
	}
	return nil
}
