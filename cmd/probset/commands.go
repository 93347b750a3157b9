package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/forestrie/go-probset/hashgen"
	"github.com/forestrie/go-probset/scalable"
	"github.com/forestrie/go-probset/snapshot"
)

const (
	backendBolt   = "bolt"
	backendBadger = "badger"

	defaultExponent  = scalable.DefaultInitialExponent
	defaultAlgorithm = "md5"
)

var errNoSet = errors.New("--set is required")

// session is the store opened for a single command.
type session struct {
	ctx     context.Context
	log     logger.Logger
	backend snapshot.Backend
	store   *snapshot.Store
	out     io.Writer
}

func openSession(c *cli.Context) (*session, error) {
	log := logger.Sugar.WithServiceName(serviceName)

	var backend snapshot.Backend
	var err error
	path := c.GlobalString("db")
	switch kind := c.GlobalString("backend"); kind {
	case backendBolt:
		backend, err = snapshot.OpenBolt(path)
	case backendBadger:
		backend, err = snapshot.OpenBadger(path)
	default:
		return nil, errors.Errorf("unknown backend %q", kind)
	}
	if err != nil {
		return nil, err
	}
	log.Debugf("opened %s store %s", c.GlobalString("backend"), path)

	return &session{
		ctx:     context.Background(),
		log:     log,
		backend: backend,
		store:   snapshot.NewStore(log, backend),
		out:     c.App.Writer,
	}, nil
}

func (s *session) Close() error {
	return s.backend.Close()
}

func (s *session) loadSet(c *cli.Context) (uuid.UUID, *scalable.Set[string], error) {
	raw := c.String("set")
	if raw == "" {
		return uuid.Nil, nil, errNoSet
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, nil, errors.Wrapf(err, "set id %q", raw)
	}
	st, err := s.store.LoadSet(s.ctx, id)
	if err != nil {
		return uuid.Nil, nil, err
	}
	set, err := scalable.FromState(st, scalable.WithLogger[string](s.log))
	if err != nil {
		return uuid.Nil, nil, errors.Wrapf(err, "restore set %s", id)
	}
	return id, set, nil
}

// words returns the command arguments, or the non-empty lines of stdin when
// there are none.
func words(c *cli.Context) ([]string, error) {
	if c.Args().Present() {
		return c.Args(), nil
	}
	in, ok := c.App.Metadata["stdin"].(io.Reader)
	if !ok || in == nil {
		return nil, nil
	}
	var lines []string
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, sc.Err()
}

func newSet(c *cli.Context) error {
	alg, err := hashgen.Lookup(c.String("alg"))
	if err != nil {
		return err
	}
	exp := c.Int("exp")
	if exp < 0 {
		return scalable.ErrBadExponent
	}

	s, err := openSession(c)
	if err != nil {
		return err
	}
	defer s.Close()

	set, err := scalable.New(c.Float64("fpp"),
		scalable.WithInitialExponent[string](uint(exp)),
		scalable.WithAlgorithm[string](alg),
		scalable.WithLogger[string](s.log))
	if err != nil {
		return err
	}
	id := uuid.New()
	if err := s.store.SaveSet(s.ctx, id, set.State()); err != nil {
		return err
	}
	fmt.Fprintln(s.out, id)
	return nil
}

func addWords(c *cli.Context) error {
	s, err := openSession(c)
	if err != nil {
		return err
	}
	defer s.Close()

	id, set, err := s.loadSet(c)
	if err != nil {
		return err
	}
	ws, err := words(c)
	if err != nil {
		return err
	}
	for _, w := range ws {
		if err := set.Put(w); err != nil {
			return errors.Wrapf(err, "add %q", w)
		}
	}
	if err := s.store.SaveSet(s.ctx, id, set.State()); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "added %d, size %d\n", len(ws), set.Size())
	return nil
}

func testWords(c *cli.Context) error {
	s, err := openSession(c)
	if err != nil {
		return err
	}
	defer s.Close()

	_, set, err := s.loadSet(c)
	if err != nil {
		return err
	}
	ws, err := words(c)
	if err != nil {
		return err
	}
	for _, w := range ws {
		ok, err := set.MightContain(w)
		if err != nil {
			return err
		}
		answer := color.RedString("no")
		if ok {
			answer = color.GreenString("maybe")
		}
		fmt.Fprintf(s.out, "%s\t%s\n", answer, w)
	}
	return nil
}

func showStats(c *cli.Context) error {
	s, err := openSession(c)
	if err != nil {
		return err
	}
	defer s.Close()

	id, set, err := s.loadSet(c)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "set         %s\n", id)
	fmt.Fprintf(s.out, "algorithm   %v\n", set.Algorithm())
	fmt.Fprintf(s.out, "size        %d\n", set.Size())
	fmt.Fprintf(s.out, "filters     %d\n", set.FilterCount())
	fmt.Fprintf(s.out, "generation  %d\n", set.Generation())
	fmt.Fprintf(s.out, "target fpp  %g\n", set.TargetProbability())
	fmt.Fprintf(s.out, "fpp         %.6f\n", set.FalsePositiveProbability())
	for i, f := range set.Stats() {
		fmt.Fprintf(s.out, "  %d: expected=%d inserted=%d m=%d k=%d fpp=%.6f fill=%.3f\n",
			i, f.ExpectedElements, f.Inserted, f.BitSetSize, f.HashCount,
			f.FalsePositiveProbability, f.FillRatio)
	}
	return nil
}

func listSets(c *cli.Context) error {
	s, err := openSession(c)
	if err != nil {
		return err
	}
	defer s.Close()

	ids, err := s.store.List(s.ctx, snapshot.KindSet)
	if err != nil {
		return err
	}
	for _, id := range ids {
		fmt.Fprintln(s.out, color.CyanString(id.String()))
	}
	return nil
}
