package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"skabillium/strq/cmd/db"
	"skabillium/strq/cmd/resp"
)

const StrqVersion = "0.1.0"

var ErrOOM = errors.New("OOM command not allowed when used memory > 'maxmemory'")

type Server struct {
	addr   string
	db     *db.Database
	logger *logrus.Logger

	ln    net.Listener
	ready chan struct{}
	wg    sync.WaitGroup
}

func NewServer(addr string, database *db.Database, logger *logrus.Logger) *Server {
	return &Server{addr: addr, db: database, logger: logger, ready: make(chan struct{})}
}

// Serve accepts connections until ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return errors.Wrapf(err, "listen on %s", s.addr)
	}
	s.ln = ln
	close(s.ready)

	s.logger.WithContext(ctx).Infof("strq server started on %s", ln.Addr())

	go func() {
		<-ctx.Done()
		s.logger.Info("strq server is shutting down")
		ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				s.wg.Wait()
				return nil
			}
			s.logger.WithError(err).Warn("accept error")
			continue
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handleConnection(ctx, conn)
		}()
	}
}

// Addr blocks until the server listens and returns its address.
func (s *Server) Addr() net.Addr {
	<-s.ready
	return s.ln.Addr()
}

func (s *Server) handleConnection(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	log := s.logger.WithFields(logrus.Fields{
		"conn":   uuid.NewString(),
		"remote": conn.RemoteAddr().String(),
	})
	log.Debug("connection opened")

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	r := bufio.NewReader(conn)
	w := bufio.NewWriter(conn)
	for {
		req, err := resp.Read(r)
		if err != nil {
			if err != io.EOF && ctx.Err() == nil {
				log.WithError(err).Warn("read error")
			}
			log.Debug("connection closed")
			return
		}

		reply := s.handle(req)
		if e, ok := reply.(error); ok {
			log.WithError(e).Debug("command failed")
		}

		out, err := resp.Serialize(reply)
		if err != nil {
			out = resp.SerializeError(errors.Wrap(err, "ERR"))
		}
		if _, err := w.WriteString(out); err != nil {
			log.WithError(err).Warn("write error")
			return
		}
		if err := w.Flush(); err != nil {
			log.WithError(err).Warn("write error")
			return
		}
	}
}

func (s *Server) handle(req any) any {
	args, err := RequestArgs(req)
	if err != nil {
		return err
	}

	cmd, err := ParseCommand(args)
	if err != nil {
		return err
	}

	return execute(s.db, cmd)
}

func execute(d *db.Database, cmd *Command) any {
	switch cmd.Kind {
	case CmdVersion:
		return "strq server version " + StrqVersion
	case CmdPing:
		return resp.SimpleString("PONG")
	case CmdKeys:
		return d.Keys()
	case CmdDbSize:
		return d.DbSize()
	case CmdFlushAll:
		d.FlushAll()
		return resp.SimpleString("OK")
	case CmdInfo:
		return map[string]any{
			"version":     StrqVersion,
			"queues":      d.DbSize(),
			"used_memory": d.UsedMemory(),
		}
	case CmdQueueNew:
		if err := d.Create(cmd.Key); err != nil {
			return replyError(err)
		}
		return resp.SimpleString("OK")
	case CmdLPush, CmdRPush:
		push := d.RPush
		if cmd.Kind == CmdLPush {
			push = d.LPush
		}
		n, err := push(cmd.Key, cmd.Values...)
		if err != nil {
			return replyError(err)
		}
		return n
	case CmdLPop:
		value, found, err := d.LPop(cmd.Key, cmd.Limit)
		if err != nil {
			return replyError(err)
		}
		if !found {
			return nil
		}
		return value
	case CmdLLen:
		return d.LLen(cmd.Key)
	case CmdLRange:
		return d.LRange(cmd.Key, cmd.Start, cmd.Stop)
	case CmdQueueReverse:
		return d.Reverse(cmd.Key)
	case CmdQueueSort:
		return d.Sort(cmd.Key)
	case CmdDel:
		return d.Del(cmd.Keys...)
	}

	return ErrUnknownCmd(fmt.Sprint(cmd.Kind))
}

// Translate database errors to protocol errors
func replyError(err error) error {
	switch {
	case errors.Is(err, db.ErrAllocation):
		return ErrOOM
	case errors.Is(err, db.ErrKeyExists):
		return errors.New("ERR key already exists")
	}
	return errors.Wrap(err, "ERR")
}
