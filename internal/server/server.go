package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/avcve/yakawa-sKitchen/internal/auth"
	"github.com/avcve/yakawa-sKitchen/internal/config"
	"github.com/avcve/yakawa-sKitchen/internal/images"
	adminhttp "github.com/avcve/yakawa-sKitchen/internal/interfaces/http/admin"
	commonhttp "github.com/avcve/yakawa-sKitchen/internal/interfaces/http/common"
	publichttp "github.com/avcve/yakawa-sKitchen/internal/interfaces/http/public"
	"github.com/avcve/yakawa-sKitchen/internal/review/application"
	"github.com/avcve/yakawa-sKitchen/internal/review/domain"
)

// Server は HTTP サーバーのライフサイクルを管理し、Public/Admin の各ハンドラへ
// 依存注入するコンポジションルート。ドメインロジックはここに書かない。
type Server struct {
	logger         *log.Logger
	backend        *Backend
	state          *application.StateStore
	gate           *auth.Gate
	uploads        *images.Service
	location       *time.Location
	addr           string
	allowedOrigins []string
}

// New は Config と接続済みの Backend から Server を組み立てる。
// 依存解決の起点となるファクトリ。
func New(ctx context.Context, cfg config.Config, backend *Backend) (*Server, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		loc = time.FixedZone("JST", 9*60*60)
		cfg.ServerLog.Printf("タイムゾーン %s の読み込みに失敗: %v, JST を使用します", cfg.Timezone, err)
	}

	tokens := auth.NewTokenIssuer(cfg.SessionSecret, cfg.SessionIssuer, cfg.SessionTTL)
	defaults := auth.Credentials{Username: cfg.AdminUsername, Password: cfg.AdminPassword}
	gate, err := auth.NewGate(ctx, defaults, backend.Credentials(), tokens)
	if err != nil {
		return nil, err
	}

	uploads, err := images.New(cfg.CloudinaryURL, cfg.CloudinaryFolder)
	if err != nil {
		return nil, err
	}
	if !uploads.Enabled() {
		cfg.ServerLog.Printf("CLOUDINARY_URL 未設定のため画像アップロードは無効です")
	}

	return &Server{
		logger:         cfg.ServerLog,
		backend:        backend,
		state:          application.NewStateStore(backend.Months(), backend.Reviews()),
		gate:           gate,
		uploads:        uploads,
		location:       loc,
		addr:           cfg.Addr,
		allowedOrigins: append([]string(nil), cfg.AllowedOrigins...),
	}, nil
}

// Run はスナップショットを読み込み、ルーティングを組み立てて HTTP サーバーを起動する。
func (s *Server) Run() error {
	startCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.state.Load(startCtx); err != nil {
		return err
	}
	if err := s.ensureDefaultMonths(startCtx); err != nil {
		s.logger.Printf("初期データの用意に失敗しました: %v", err)
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(withCORS(s.allowedOrigins))

	router.Get("/healthz", s.healthHandler())

	publicHandler := publichttp.NewHandler(publichttp.Config{
		Logger:   s.logger,
		Months:   s.state,
		Reviews:  s.state,
		Uploads:  s.uploads,
		Location: s.location,
	})
	publicHandler.Register(router)

	adminHandler := adminhttp.NewHandler(adminhttp.Config{
		Logger:   s.logger,
		Gate:     s.gate,
		Months:   s.state,
		Reviews:  s.state,
		Location: s.location,
	})
	router.Route("/admin", func(r chi.Router) {
		adminHandler.Register(r, s.sessionMiddleware)
	})

	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Printf("HTTP サーバー起動: http://%s", s.addr)
		errChan <- httpServer.ListenAndServe()
	}()

	waitForShutdown(httpServer, errChan, s)
	return nil
}

// ensureDefaultMonths は月が 1 件もない環境に既定の 2 ヶ月分を登録する。
// ローカル環境でもトップページが空にならないよう起動時に呼び出す。
func (s *Server) ensureDefaultMonths(ctx context.Context) error {
	if len(s.state.Months()) > 0 {
		return nil
	}

	now := time.Now().UTC()
	defaults := []domain.Month{
		{
			ID:        "jan-2026",
			Name:      "January 2026",
			Status:    domain.MonthStatusClosed,
			CreatedAt: now.Add(-time.Second),
			UpdatedAt: now.Add(-time.Second),
		},
		{
			ID:        "feb-2026",
			Name:      "February 2026",
			Status:    domain.MonthStatusActive,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	for i := range defaults {
		if err := s.backend.Months().Insert(ctx, &defaults[i]); err != nil {
			return err
		}
	}

	s.logger.Printf("既定の月データを登録しました")
	return s.state.Load(ctx)
}

// healthHandler はストレージへの疎通確認を行い、監視系からの
// ヘルスチェック要求に応える。インフラ状態のみを返す設計。
func (s *Server) healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := s.backend.Ping(ctx); err != nil {
			commonhttp.WriteJSON(s.logger, w, http.StatusServiceUnavailable, map[string]string{
				"status": "degraded",
				"error":  err.Error(),
			})
			return
		}

		commonhttp.WriteJSON(s.logger, w, http.StatusOK, map[string]string{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	}
}

// sessionMiddleware は Authorization ヘッダーからセッショントークンを検証し、
// 認証済み管理者をコンテキストへ詰める。
func (s *Server) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
		if authHeader == "" {
			commonhttp.WriteError(s.logger, w, http.StatusUnauthorized, "Authorization ヘッダーがありません")
			return
		}

		const bearerPrefix = "Bearer "
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			commonhttp.WriteError(s.logger, w, http.StatusUnauthorized, "Bearer トークンを指定してください")
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix))
		if tokenString == "" {
			commonhttp.WriteError(s.logger, w, http.StatusUnauthorized, "セッショントークンが空です")
			return
		}

		principal, err := s.gate.Verify(tokenString)
		if err != nil {
			commonhttp.WriteError(s.logger, w, http.StatusUnauthorized, "セッションが無効です。再度ログインしてください")
			return
		}

		ctx := commonhttp.ContextWithPrincipal(r.Context(), principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// withCORS は許可されたオリジン情報をもとに CORS ヘッダーを付与するミドルウェアを返す。
func withCORS(origins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{})
	allowAll := false
	for _, origin := range origins {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		if origin == "*" {
			allowAll = true
			continue
		}
		allowed[origin] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := strings.TrimSpace(r.Header.Get("Origin"))
			if origin == "" || (!allowAll && len(allowed) > 0 && !originAllowed(origin, allowed)) {
				if r.Method == http.MethodOptions {
					w.WriteHeader(http.StatusNoContent)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,PATCH,DELETE,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Authorization,Content-Type")
			w.Header().Set("Access-Control-Max-Age", "300")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// originAllowed は指定された Origin が許可リストに含まれるか判定する。
func originAllowed(origin string, allowed map[string]struct{}) bool {
	if len(allowed) == 0 {
		return true
	}
	_, ok := allowed[origin]
	return ok
}

// waitForShutdown は ListenAndServe の終了と OS シグナルを監視し、graceful shutdown を実現する。
func waitForShutdown(httpServer *http.Server, errChan <-chan error, srv *Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			srv.logger.Fatalf("サーバーが異常終了: %v", err)
		}
	case sig := <-sigChan:
		srv.logger.Printf("シグナル %s を受信。サーバー停止処理を開始します。", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			srv.logger.Printf("サーバー停止時にエラー: %v", err)
		}
	}

	srv.backend.Close(context.Background())
}
