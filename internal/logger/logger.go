package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log *zap.Logger

// Init - global zap logger'ı hazırlar. APP_ENV=production ise JSON,
// aksi halde renkli development çıktısı.
func Init(environment string) error {
	var err error
	if environment == "production" {
		prodConfig := zap.NewProductionConfig()
		prodConfig.EncoderConfig.TimeKey = "timestamp"
		prodConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		log, err = prodConfig.Build(zap.Fields(
			zap.String("service", "takas-backend"),
		))
	} else {
		devConfig := zap.NewDevelopmentConfig()
		devConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		log, err = devConfig.Build()
	}
	if err != nil {
		return err
	}

	zap.ReplaceGlobals(log)
	return nil
}

func Get() *zap.Logger {
	if log == nil {
		// Init çağrılmadan kullanılırsa sessizce no-op logger ver (testler için)
		log = zap.NewNop()
	}
	return log
}
