package main

import (
	"context"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func NewClient(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Protocol: 2,
	})
}

func clientCommand(ctx context.Context, logger *logrus.Logger) *cobra.Command {
	var host, port string
	cmd := &cobra.Command{
		Use:   "client <command> [args...]",
		Short: "Send one command to a strq server and print the reply",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			client := NewClient(host + ":" + port)
			defer client.Close()

			logger.WithField("addr", host+":"+port).Debug("sending command")
			return runClient(ctx, client, args, c.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&host, "host", envOr("STRQ_HOST", DefaultHost), "Server host")
	cmd.Flags().StringVarP(&port, "port", "p", envOr("STRQ_PORT", DefaultPort), "Server port")

	return cmd
}

func runClient(ctx context.Context, client *redis.Client, args []string, out io.Writer) error {
	cmdArgs := make([]any, len(args))
	for i, a := range args {
		cmdArgs[i] = a
	}

	res, err := client.Do(ctx, cmdArgs...).Result()
	if err == redis.Nil {
		fmt.Fprintln(out, "(nil)")
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "client")
	}

	printReply(out, res, "")
	return nil
}

func printReply(out io.Writer, v any, indent string) {
	switch v := v.(type) {
	case []any:
		if len(v) == 0 {
			fmt.Fprintln(out, indent+"(empty array)")
		}
		for i, el := range v {
			fmt.Fprintf(out, "%s%d) ", indent, i+1)
			printReply(out, el, "")
		}
	case int64:
		fmt.Fprintf(out, "(integer) %d\n", v)
	case nil:
		fmt.Fprintln(out, "(nil)")
	default:
		fmt.Fprintf(out, "%v\n", v)
	}
}
