package logging

import "go.uber.org/zap"

// Init builds the process-wide logger and installs it as zap's global,
// so packages can log via zap.L() without threading a logger around.
func Init(appEnv string) (*zap.Logger, error) {
	var (
		lg  *zap.Logger
		err error
	)
	if appEnv == "dev" {
		lg, err = zap.NewDevelopment()
	} else {
		lg, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(lg)
	return lg, nil
}
