package main

import (
	"context"
	"fmt"
	"net"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"github.com/osmosis-labs/osmosis-testing/bridge/remote"
	"github.com/osmosis-labs/osmosis-testing/runner"
)

const (
	flagAddress = "address"

	defaultAddress = "127.0.0.1:9191"
)

func serveCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the simulator bridge over gRPC",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := newLogger(v)
			if err != nil {
				return err
			}
			config, err := loadConfig(v)
			if err != nil {
				return err
			}

			lis, err := net.Listen("tcp", v.GetString(flagAddress))
			if err != nil {
				return fmt.Errorf("listen: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return serve(ctx, lis, remote.NewServer(newSimulator(v, config, logger), logger))
		},
	}

	cmd.Flags().String(flagAddress, defaultAddress, "The address the bridge listens on")
	addSimulatorFlags(cmd.Flags())
	runner.AddConfigFlags(cmd)

	return cmd
}

// serve runs srv on lis until ctx is done or the server fails.
func serve(ctx context.Context, lis net.Listener, srv *remote.Server) error {
	gs := grpc.NewServer()
	srv.Register(gs)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return gs.Serve(lis)
	})
	g.Go(func() error {
		<-ctx.Done()
		gs.GracefulStop()
		return nil
	})

	return g.Wait()
}
