package http

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	channelService "github.com/reshetovitsme/channel-invite-bot/internal/modules/channel/service"
	feedService "github.com/reshetovitsme/channel-invite-bot/internal/modules/feed/service"
	"github.com/reshetovitsme/channel-invite-bot/internal/shared/config"
	sharedErrors "github.com/reshetovitsme/channel-invite-bot/internal/shared/errors"
	sloghttp "github.com/samber/slog-http"
)

const landingPage = `<!DOCTYPE html>
<html>
<head>
    <title>Join Our Private Channels</title>
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <style>
        body { font-family: Arial, sans-serif; text-align: center; padding: 50px; background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); color: white; }
        .container { max-width: 400px; margin: 0 auto; }
        .btn { background: #25D366; color: white; padding: 15px 25px; border-radius: 50px; text-decoration: none; display: inline-block; margin: 10px; font-weight: bold; }
    </style>
</head>
<body>
    <div class="container">
        <h1>Welcome to the Inner Circle</h1>
        <p>Get instant access to our exclusive private channels.</p>
        <a class="btn" href="{{start_link}}">GET ACCESS NOW</a>
        <p><small>You will be redirected to Telegram to complete the join process.</small></p>
    </div>
</body>
</html>`

// Server serves the landing page, probes, the channel feed and, in
// webhook mode, inbound updates.
type Server struct {
	cfg            *config.Config
	channelService *channelService.Service
	feedService    *feedService.Service
	webhook        http.Handler
	webhookPath    string
	logger         *slog.Logger
	server         *http.Server
	landing        []byte
}

// New creates a new HTTP server. Configuration methods must be called
// before Start.
func New(cfg *config.Config, channelService *channelService.Service, feedService *feedService.Service) *Server {
	startLink := fmt.Sprintf("https://t.me/%s?start=source_landing", url.PathEscape(cfg.BotUsername))
	s := &Server{
		cfg:            cfg,
		channelService: channelService,
		feedService:    feedService,
		logger:         slog.Default(),
		landing:        []byte(strings.Replace(landingPage, "{{start_link}}", template.HTMLEscapeString(startLink), 1)),
		server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
	s.server.Handler = s.Handler()
	return s
}

// SetLogger sets the logger
func (s *Server) SetLogger(logger *slog.Logger) {
	s.logger = logger
	s.server.Handler = s.Handler()
}

// MountWebhook exposes the update webhook at path
func (s *Server) MountWebhook(path string, handler http.Handler) {
	s.webhookPath = path
	s.webhook = handler
	s.server.Handler = s.Handler()
}

// Handler builds the routed handler with logging and recovery middleware
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /test", s.handleTest)
	mux.HandleFunc("GET /channels.rss", s.handleChannelFeed)
	mux.HandleFunc("GET /join/{position}", s.handleJoin)
	mux.HandleFunc("GET /{$}", s.handleRoot)

	// any method; the webhook answers 405 itself
	if s.webhook != nil {
		mux.Handle(s.webhookPath, s.webhook)
	}

	handler := sloghttp.Recovery(mux)
	handler = sloghttp.NewWithFilters(s.logger, sloghttp.IgnorePath("/health"))(handler)
	return handler
}

// Start starts the HTTP server. It returns nil after Shutdown.
func (s *Server) Start() error {
	s.logger.Info("HTTP server starting", "addr", s.server.Addr)

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones. Calling it
// before Start makes Start return immediately.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleTest(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Bot is running"))
}

func (s *Server) handleChannelFeed(w http.ResponseWriter, r *http.Request) {
	baseURL := fmt.Sprintf("%s://%s", getScheme(r), r.Host)

	rss, err := s.feedService.GenerateFeed(baseURL).ToRss()
	if err != nil {
		s.logger.Error("Error converting feed to RSS", "error", err)
		http.Error(w, "Failed to generate RSS", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=300")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(rss))
}

func (s *Server) handleJoin(w http.ResponseWriter, r *http.Request) {
	position, err := strconv.Atoi(r.PathValue("position"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	link, err := s.channelService.InviteLink(position)
	if errors.Is(err, sharedErrors.ErrChannelNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		s.logger.Error("Error resolving invite link", "position", position, "error", err)
		http.Error(w, "Failed to resolve invite link", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, link, http.StatusFound)
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(s.landing)
}

func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}
