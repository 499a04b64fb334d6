package common

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	commonconfig "github.com/smartdata/ssm-dashboard/internal/common/config"
	"github.com/smartdata/ssm-dashboard/internal/common/logging"
)

const logLevelEnvVar = "SSMCTL_LOG_LEVEL"

// UnmarshalConfig decodes the merged viper configuration into config and validates it.
func UnmarshalConfig(config interface{}) error {
	if err := viper.Unmarshal(config, commonconfig.CustomHooks...); err != nil {
		return errors.WithStack(err)
	}
	if err := commonconfig.Validate(config); err != nil {
		commonconfig.LogValidationErrors(err)
		return errors.Wrap(err, "invalid configuration")
	}
	return nil
}

// ConfigureCommandLineLogging is used by ssmctl for one-shot commands: no timestamps, output on
// stderr so that it doesn't interleave with command output.
func ConfigureCommandLineLogging() {
	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	log.SetOutput(os.Stderr)
	log.SetLevel(levelFromEnv(log.WarnLevel))
}

// ConfigureLogging is used for long-running processes such as ssmctl's watch mode. Log lines are
// also counted per level in ssm_log_messages_total.
func ConfigureLogging() {
	log.SetFormatter(&log.TextFormatter{ForceColors: true, FullTimestamp: true})
	log.SetOutput(os.Stderr)
	log.SetLevel(levelFromEnv(log.InfoLevel))
	log.AddHook(logging.NewPrometheusHook())
}

func levelFromEnv(fallback log.Level) log.Level {
	value, ok := os.LookupEnv(logLevelEnvVar)
	if !ok {
		return fallback
	}
	level, err := log.ParseLevel(strings.TrimSpace(value))
	if err != nil {
		log.Warnf("ignoring invalid %s %q", logLevelEnvVar, value)
		return fallback
	}
	return level
}
