package api

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberRecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/scene-stealer/scene-eval/orchestrator"
)

type Evaluator interface {
	Evaluate(ctx context.Context, videoPath, sceneID string) (*orchestrator.Result, error)
}

type Config struct {
	UploadDir   string
	BodyLimitMB int
}

type errorResponse struct {
	Detail string `json:"detail"`
}

type uploadResponse struct {
	Filename string `json:"filename"`
	Status   string `json:"status"`
}

type controller struct {
	eval      Evaluator
	uploadDir string
}

// New builds the HTTP app. Uploaded files are kept in cfg.UploadDir.
func New(eval Evaluator, cfg Config) *fiber.App {
	limit := cfg.BodyLimitMB
	if limit <= 0 {
		limit = 100
	}
	app := fiber.New(fiber.Config{
		BodyLimit: limit * 1024 * 1024,
	})
	app.Use(fiberRecover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, OPTIONS",
	}))

	c := &controller{eval: eval, uploadDir: cfg.UploadDir}
	app.Get("/", c.root)
	apiGroup := app.Group("/api")
	apiGroup.Post("/upload", c.upload)
	apiGroup.Post("/evaluate-scene", c.evaluateScene)
	return app
}

func (c *controller) root(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{"message": "Scene Stealer API is running"})
}

func (c *controller) upload(ctx *fiber.Ctx) error {
	fh, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(errorResponse{Detail: "form file 'file' is required"})
	}
	name, err := c.store(fh.Filename, func(dst string) error { return ctx.SaveFile(fh, dst) })
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(errorResponse{Detail: err.Error()})
	}
	return ctx.JSON(uploadResponse{Filename: name, Status: "success"})
}

func (c *controller) evaluateScene(ctx *fiber.Ctx) error {
	sceneID := ctx.Query("scene_id")
	if sceneID == "" {
		sceneID = ctx.FormValue("scene_id")
	}
	if sceneID == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(errorResponse{Detail: "scene_id is required"})
	}
	fh, err := ctx.FormFile("video")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(errorResponse{Detail: "form file 'video' is required"})
	}

	logger := log.WithFields(log.Fields{"scene_id": sceneID, "file_name": fh.Filename, "size": fh.Size})
	name, err := c.store(fh.Filename, func(dst string) error { return ctx.SaveFile(fh, dst) })
	if err != nil {
		logger.WithError(err).Error("could not store upload")
		return ctx.Status(fiber.StatusInternalServerError).JSON(errorResponse{Detail: err.Error()})
	}

	res, err := c.eval.Evaluate(ctx.UserContext(), filepath.Join(c.uploadDir, name), sceneID)
	if err != nil {
		logger.WithError(err).Error("evaluation failed")
		return ctx.Status(fiber.StatusInternalServerError).JSON(errorResponse{Detail: err.Error()})
	}
	return ctx.JSON(res)
}

// store saves an upload under a collision-free name and returns that name.
func (c *controller) store(original string, save func(dst string) error) (string, error) {
	if err := os.MkdirAll(c.uploadDir, 0o755); err != nil {
		return "", err
	}
	name := uuid.NewString() + "_" + sanitize(original)
	if err := save(filepath.Join(c.uploadDir, name)); err != nil {
		return "", err
	}
	return name, nil
}

func sanitize(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		return "upload"
	}
	return name
}
