package routers

import (
	"io"
	"runtime"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	rr "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"
	"github.com/mahmood265/speech-translator/pkg/config"
	"github.com/mahmood265/speech-translator/pkg/controllers"
	"github.com/mahmood265/speech-translator/pkg/factory"
	"github.com/mahmood265/speech-translator/version"
)

// router holds the dependencies for route registration.
type router struct {
	app  *fiber.App
	ctrl *factory.ApplicationControllers
}

func New(appConfig *config.AppConfig, ctrl *factory.ApplicationControllers) *fiber.App {
	cnf := fiber.Config{
		JSONEncoder: json.Marshal,
		JSONDecoder: json.Unmarshal,
		// raw PCM chunk bodies are the largest payloads we accept
		BodyLimit: int(appConfig.UploadFileSettings.MaxChunkSize),
		AppName:   "speech-translator version: " + version.Version + " runtime: " + runtime.Version(),
	}

	if appConfig.Client.Path != "" {
		templateEngine := html.New(appConfig.Client.Path, ".html")
		if appConfig.Client.Debug {
			templateEngine.Reload(true)
			templateEngine.Debug(true)
		}
		cnf.Views = templateEngine
	}
	if appConfig.Client.ProxyHeader != "" {
		cnf.ProxyHeader = appConfig.Client.ProxyHeader
	}

	app := fiber.New(cnf)

	app.Use(logger.New(logger.Config{
		Done: func(c *fiber.Ctx, logString []byte) {
			appConfig.Logger.Debugln(string(logString))
		},
		Format: "${status} | ${latency} | ${ip} | ${method} | ${path} | ${error}",
		Output: io.Discard,
	}))

	if appConfig.Client.PrometheusConf.Enable {
		prometheus := fiberprometheus.New("speech-translator")
		prometheus.RegisterAt(app, appConfig.Client.PrometheusConf.MetricsPath)
		app.Use(prometheus.Middleware)
	}

	app.Use(rr.New())
	app.Use(cors.New(cors.Config{
		AllowMethods: "POST,GET,OPTIONS",
	}))

	r := &router{
		app:  app,
		ctrl: ctrl,
	}

	r.registerBaseRoutes(appConfig)
	r.registerAPIRoutes()

	// catch-all 404, must be registered last
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).SendString("not found")
	})

	return app
}

func (r *router) registerBaseRoutes(appConfig *config.AppConfig) {
	if appConfig.Client.Path != "" {
		r.app.Static("/assets", appConfig.Client.Path+"/assets")
		r.app.Get("/", func(c *fiber.Ctx) error {
			return c.Render("index", nil)
		})
	}
	r.app.Get("/healthCheck", controllers.HandleHealthCheck)
}

func (r *router) registerAPIRoutes() {
	api := r.app.Group("/api")
	api.Get("/config", r.ctrl.TranslateController.HandleConfig)
	api.Post("/translate", r.ctrl.TranslateController.HandleTranslate)

	stream := api.Group("/stream")
	stream.Post("/start", r.ctrl.StreamController.HandleStreamStart)
	stream.Post("/chunk", r.ctrl.StreamController.HandleStreamChunk)
	stream.Post("/stop", r.ctrl.StreamController.HandleStreamStop)
	stream.Get("/translate/:sessionId", r.ctrl.StreamController.HandleStreamTranslate)
	stream.Get("/audio/:sessionId", r.ctrl.StreamController.HandleStreamAudio)
}
