// SPDX-License-Identifier: MPL-2.0

// Package progress defines the boundary through which the loader reports how
// far along a load is. A sink receives the expected length of each stage once,
// then one Step per unit of work.
package progress

import (
	"sync"

	"github.com/charmbracelet/log"
)

const (
	// StagePackages counts archives scanned.
	StagePackages Stage = "PAK"
	// StageObjects counts content definitions parsed.
	StageObjects Stage = "OBJ"
	// StageImages counts definitions that carry an icon. The loader only sets its length.
	StageImages Stage = "IMG"
	// StageResources counts extracted resource entries.
	StageResources Stage = "RES"
)

type (
	// Stage names a step group of a load.
	Stage string

	// Sink receives progress reports. The loader reports from one goroutine.
	Sink interface {
		Length(stage Stage, n int)
		Step(stage Stage)
	}

	nopSink struct{}

	// Counter records lengths and steps; useful for tests and summaries.
	Counter struct {
		mu      sync.Mutex
		lengths map[Stage]int
		steps   map[Stage]int
		order   []Stage
	}

	// LogSink writes stage transitions to a logger at debug level and a line
	// at info level when a stage completes.
	LogSink struct {
		logger *log.Logger
		c      Counter
	}
)

// Nop returns a sink that discards everything.
func Nop() Sink { return nopSink{} }

func (nopSink) Length(Stage, int) {}
func (nopSink) Step(Stage)        {}

// NewCounter creates an empty Counter.
func NewCounter() *Counter {
	return &Counter{lengths: make(map[Stage]int), steps: make(map[Stage]int)}
}

// Length records the expected number of steps for stage.
func (c *Counter) Length(stage Stage, n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.init()
	if _, seen := c.lengths[stage]; !seen {
		c.order = append(c.order, stage)
	}
	c.lengths[stage] = n
}

// Step records one unit of progress for stage.
func (c *Counter) Step(stage Stage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.init()
	c.steps[stage]++
}

// LengthOf returns the recorded length of stage.
func (c *Counter) LengthOf(stage Stage) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lengths[stage]
}

// Steps returns the number of steps recorded for stage.
func (c *Counter) Steps(stage Stage) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.steps[stage]
}

// Stages returns the stages in the order their length was first set.
func (c *Counter) Stages() []Stage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Stage(nil), c.order...)
}

func (c *Counter) init() {
	if c.lengths == nil {
		c.lengths = make(map[Stage]int)
		c.steps = make(map[Stage]int)
	}
}

// NewLogSink creates a sink that reports to logger.
func NewLogSink(logger *log.Logger) *LogSink {
	return &LogSink{logger: logger}
}

// Length implements Sink.
func (s *LogSink) Length(stage Stage, n int) {
	s.c.Length(stage, n)
	s.logger.Debug("stage started", "stage", stage, "total", n)
}

// Step implements Sink.
func (s *LogSink) Step(stage Stage) {
	s.c.Step(stage)
	done, total := s.c.Steps(stage), s.c.LengthOf(stage)
	s.logger.Debug("step", "stage", stage, "done", done, "total", total)
	if done == total {
		s.logger.Info("stage complete", "stage", stage, "steps", done)
	}
}
