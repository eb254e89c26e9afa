package main

import (
	"context"
	"fmt"
	"hash/fnv"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/gethiox/midinames/internal/pkg/logger"
	"github.com/logrusorgru/aurora"
)

func gray(v uint8) aurora.Color {
	if v > 23 {
		v = 23
	}
	return aurora.Color(232+v) << 16
}

func color(r, g, b uint8) aurora.Color {
	return aurora.Color(16+36*r+6*g+b) << 16
}

// returns random color for string, will return the same color for the same string
func colorForString(au aurora.Aurora, s string) aurora.Value {
	h := fnv.New32a()
	h.Write([]byte(s))
	sum := h.Sum32()

	r, g, b := uint8(sum)&0b00000111, uint8(sum>>8)&0b00000111, uint8(sum>>16)&0b00000111
	if r > 5 {
		r = 5
	}
	if g > 5 {
		g = 5
	}
	if b > 5 {
		b = 5
	}

	// avoid dark colors
	if r+g+b < 3 {
		r += 1
		g += 1
		b += 1
	}

	return au.Index(16+36*r+6*g+b, s)
}

func prepareString(msg logger.Entry, au aurora.Aurora, logLevel int) string {
	if msg.Level > logLevel {
		return ""
	}

	var msgColor aurora.Color

	switch msg.Level {
	case logger.ErrorLvl:
		msgColor = color(5, 1, 1)
	case logger.WarningLvl:
		msgColor = color(5, 5, 1)
	case logger.InfoLvl:
		msgColor = gray(18)
	case logger.ResultLvl:
		msgColor = gray(15)
	case logger.ProfileLvl:
		msgColor = gray(13)
	case logger.DebugLvl:
		msgColor = gray(9)
	}

	timestamp := fmt.Sprintf(
		"[%s]",
		au.Reset(time.Time(msg.Ts).Format("15:04:05.000")).Colorize(color(1, 1, 5)).String(),
	)

	var fields []string
	if msg.Profile != "" {
		fields = append(fields, fmt.Sprintf("[profile=%s]", colorForString(au, msg.Profile).String()))
	}
	if msg.File != "" {
		fields = append(fields, fmt.Sprintf("[file=%s]", colorForString(au, msg.File).String()))
	}
	if msg.Error != "" {
		fields = append(fields, fmt.Sprintf("[error=%s]", au.Reset(msg.Error).Colorize(color(5, 1, 1)).String()))
	}
	if logLevel >= logger.DebugLvl && msg.Caller != "" {
		x := strings.SplitN(msg.Caller, ":", 2)
		caller := colorForString(au, x[0]).String()
		if len(x) == 2 {
			caller += ":" + x[1]
		}
		fields = append(fields, fmt.Sprintf("(%s)", caller))
	}

	m := au.Reset(msg.Msg).Colorize(msgColor).String()
	if len(fields) == 0 {
		return fmt.Sprintf("%s %s", timestamp, m)
	}
	return fmt.Sprintf("%s %s %s", timestamp, m, strings.Join(fields, " "))
}

func writeEntry(w io.Writer, data []byte, au aurora.Aurora, logLevel int) {
	msg, err := logger.Unpack(data)
	if err != nil {
		fmt.Fprintf(w, "%s\n", string(data))
		return
	}
	m := prepareString(msg, au, logLevel)
	if m != "" {
		fmt.Fprintf(w, "%s\n", m)
	}
}

// printLogs renders logger messages until ctx is done, then flushes what is left.
func printLogs(ctx context.Context, wg *sync.WaitGroup, w io.Writer, au aurora.Aurora, logLevel int) {
	defer wg.Done()
	for {
		select {
		case data := <-logger.Messages:
			writeEntry(w, data, au, logLevel)
		case <-ctx.Done():
			for {
				select {
				case data := <-logger.Messages:
					writeEntry(w, data, au, logLevel)
				default:
					return
				}
			}
		}
	}
}
