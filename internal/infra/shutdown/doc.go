// Package shutdown coordinates graceful shutdown of long-running commands.
//
// A Handler turns SIGINT and SIGTERM into context cancellation and runs
// registered cleanup hooks, newest first, under a timeout:
//
//	h := shutdown.NewHandler(5 * time.Second)
//	ctx, stop := h.Context(context.Background())
//	defer stop()
//	h.OnShutdown(srv.Shutdown)
//	<-ctx.Done()
//	err := h.Shutdown()
package shutdown
