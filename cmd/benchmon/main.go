package main

import (
	"context"
	"flag"
	"io"

	"github.com/golang/glog"

	fx "github.com/robotalks/benchmon/pkg/framework"
	env "github.com/robotalks/benchmon/pkg/env/instrument"
)

//go-build: CGO_ENABLED=0

func init() {
	env.SetupFlags()
}

func main() {
	flag.Parse()
	defer glog.Flush()
	if err := env.EnvError(); err != nil {
		glog.Warning(err)
	}

	e := env.NewConfig().MustNewEnv()
	m := e.NewMonitor()
	glog.Infof("benchmon on %s (%s backend)", e.Config.Port, e.Config.Backend)

	err := fx.NewRunner().HandleSignals().Go(fx.NamedRun("monitor", fx.RunFunc(func(ctx context.Context) error {
		return fx.RunWithContextCloser(ctx, e.Port, func() error {
			if err := m.Run(ctx); err != io.EOF {
				return err
			}
			glog.Info("port closed")
			return nil
		})
	}))).Wait()
	if err != nil {
		glog.Exitf("monitor stopped: %v", err)
	}
}
