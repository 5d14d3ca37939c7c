package editor

import (
	"time"

	"void/assistant"
	"void/compile"
	"void/config"
	"void/task"
)

// Timer callbacks never touch editor state directly. They post one of
// these and the loop applies it, dropping results whose handle has since
// been superseded or cancelled.

type compileEvent struct {
	when   time.Time
	result compile.Result
	handle task.Handle
}

func (ev *compileEvent) When() time.Time { return ev.when }

type replyEvent struct {
	when time.Time
	msg  assistant.Message
}

func (ev *replyEvent) When() time.Time { return ev.when }

type configEvent struct {
	when time.Time
	cfg  *config.Config
}

func (ev *configEvent) When() time.Time { return ev.when }

type quitEvent struct {
	when time.Time
}

func (ev *quitEvent) When() time.Time { return ev.when }
