package config

import (
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides, e.g.
// SCENE_SERVICES_VOICE_URL overrides services.voice.url.
const EnvPrefix = "SCENE"

// NewViper returns a viper instance wired to SCENE_* environment variables.
// Flags bound by the caller under the same keys take precedence over env.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// ApplyOverrides copies every key set in v over the loaded file values.
func (r *Root) ApplyOverrides(v *viper.Viper) {
	str := func(key string, dst *string) {
		if s := v.GetString(key); s != "" {
			*dst = s
		}
	}
	num := func(key string, dst *int) {
		if n := v.GetInt(key); n > 0 {
			*dst = n
		}
	}
	str("pipeline.log_level", &r.Pipeline.LogLvl)
	str("pipeline.log_format", &r.Pipeline.LogFormat)
	str("media.ffmpeg", &r.Media.FFmpeg)
	str("media.ffprobe", &r.Media.FFprobe)
	str("media.temp_dir", &r.Media.TempDir)
	str("services.voice.url", &r.Services.Voice.URL)
	str("services.voice.model", &r.Services.Voice.Model)
	str("services.facial.url", &r.Services.Facial.URL)
	str("services.facial.model", &r.Services.Facial.Model)
	num("services.timeout_sec", &r.Services.TimeoutSec)
	str("server.addr", &r.Server.Addr)
	str("server.upload_dir", &r.Server.UploadDir)
	num("server.body_limit_mb", &r.Server.BodyLimitMB)
	str("paths.outputs", &r.Paths.Outputs)
}
