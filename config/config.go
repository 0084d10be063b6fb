package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type Service struct {
	URL   string `yaml:"url"`
	Model string `yaml:"model"`
}
type Services struct {
	Voice      Service `yaml:"voice"`
	Facial     Service `yaml:"facial"`
	TimeoutSec int     `yaml:"timeout_sec"`
}
type Media struct {
	FFmpeg  string `yaml:"ffmpeg"`
	FFprobe string `yaml:"ffprobe"`
	TempDir string `yaml:"temp_dir"` // transient WAV artifacts; empty means os.TempDir()
}
type Server struct {
	Addr        string `yaml:"addr"`
	UploadDir   string `yaml:"upload_dir"`
	BodyLimitMB int    `yaml:"body_limit_mb"`
}
type Root struct {
	Pipeline struct {
		Name      string `yaml:"name"`
		Version   string `yaml:"version"`
		LogLvl    string `yaml:"log_level"`
		LogFormat string `yaml:"log_format"` // text|json
	} `yaml:"pipeline"`
	Media    Media    `yaml:"media"`
	Services Services `yaml:"services"`
	Server   Server   `yaml:"server"`
	Paths    struct {
		Outputs string `yaml:"outputs"`
	} `yaml:"paths"`
}

// Load reads the YAML config at path. With an empty path it tries
// config/<CONFIG_ENV>/config.yaml and then ./config.yaml, and falls back to
// defaults when neither exists.
func Load(path string) (*Root, error) {
	if path != "" {
		return loadFile(path)
	}
	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	guess := []string{
		filepath.Join("config", env, "config.yaml"),
		"config.yaml",
	}
	for _, p := range guess {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		return loadFile(p)
	}
	cfg := &Root{}
	cfg.applyDefaults()
	return cfg, nil
}

func loadFile(path string) (*Root, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var cfg Root
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (r *Root) applyDefaults() {
	if r.Pipeline.Name == "" {
		r.Pipeline.Name = "scene-eval"
	}
	if r.Pipeline.LogLvl == "" {
		r.Pipeline.LogLvl = "info"
	}
	if r.Pipeline.LogFormat == "" {
		r.Pipeline.LogFormat = "text"
	}
	if r.Media.FFmpeg == "" {
		r.Media.FFmpeg = "ffmpeg"
	}
	if r.Media.FFprobe == "" {
		r.Media.FFprobe = "ffprobe"
	}
	if r.Services.TimeoutSec <= 0 {
		r.Services.TimeoutSec = 60
	}
	if r.Services.Voice.Model == "" {
		r.Services.Voice.Model = "voice_emotion"
	}
	if r.Services.Facial.Model == "" {
		r.Services.Facial.Model = "facial_emotion"
	}
	if r.Server.Addr == "" {
		r.Server.Addr = ":8000"
	}
	if r.Server.UploadDir == "" {
		r.Server.UploadDir = filepath.Join("static", "uploads")
	}
	if r.Server.BodyLimitMB <= 0 {
		r.Server.BodyLimitMB = 100
	}
	if r.Paths.Outputs == "" {
		r.Paths.Outputs = "outputs"
	}
}

func DurSeconds(n int) time.Duration { return time.Duration(n) * time.Second }
