package main

import (
	"io"
	"log"
	"log/slog"
	"net/http"
	"time"

	"streethunt/config"
	"streethunt/feed"
	"streethunt/handlers"
	"streethunt/logging"
	"streethunt/middleware"
	"streethunt/storage"

	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

func main() {
	logging.Setup(slog.LevelDebug)

	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err == nil {
		slog.Info("loaded configuration from .env")
	}

	flagAddr := pflag.String("addr", "", "listen address, overrides HUNT_ADDR")
	flagTemplate := pflag.String("template", "templates/index.html", "path of the page template")
	pflag.Parse()

	cfg := config.Load()
	if *flagAddr != "" {
		cfg.Addr = *flagAddr
	}

	descriptions, err := config.LoadCategoryDescriptions(cfg.CategoriesFile)
	if err != nil {
		log.Fatal("loading category descriptions: ", err)
	}

	progress, err := storage.NewByEngine(cfg.StoreEngine, cfg.ProgressFile)
	if err != nil {
		log.Fatal("init progress store: ", err)
	}
	if closer, ok := progress.(io.Closer); ok {
		defer closer.Close()
	}

	app := handlers.NewApp(
		feed.NewLoader(cfg.FeedURL()),
		storage.NewAnswerLog(cfg.AnswersFile),
		progress,
		sessions.NewCookieStore(cfg.SessionKey),
		descriptions,
		*flagTemplate,
	)

	r := mux.NewRouter()
	r.Use(middleware.Logger)

	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir("./static/"))))

	r.HandleFunc("/", handlers.IndexPage(app)).Methods("GET")
	r.HandleFunc("/set_profile", handlers.SetProfile(app)).Methods("POST")
	r.HandleFunc("/submit", handlers.SubmitAnswer(app)).Methods("POST")
	r.HandleFunc("/clear_progress", handlers.ClearProgress(app)).Methods("GET")

	srv := &http.Server{
		Handler:      r,
		Addr:         cfg.Addr,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	slog.Info("street hunt listening", "addr", cfg.Addr, "store", cfg.StoreEngine)
	log.Fatal(srv.ListenAndServe())
}
