package inline

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/preroll-cli/preroll/engine"
	"github.com/preroll-cli/preroll/log"
	"github.com/preroll-cli/preroll/widget"
)

// Run attaches a player to a headless host and feeds it commands from options.In until
// the input ends or a quit command arrives.
func Run(options *Options) error {
	if options.In == nil {
		options.In = os.Stdin
	}
	if options.Out == nil {
		options.Out = os.Stdout
	}

	var (
		mu   sync.Mutex
		last widget.View
		seen bool
	)

	write := func(view widget.View) {
		mu.Lock()
		defer mu.Unlock()

		if seen && view == last {
			return
		}
		seen, last = true, view

		var err error
		if options.Json {
			err = writeJson(options.Out, Output{View: &view})
		} else {
			err = writeText(options.Out, view)
		}
		if err != nil {
			log.Warnf("inline: write view: %v", err)
		}
	}

	report := func(err error) error {
		mu.Lock()
		defer mu.Unlock()

		if options.Json {
			return writeJson(options.Out, Output{Error: err.Error()})
		}
		_, werr := fmt.Fprintf(options.Out, "error: %v\n", err)
		return werr
	}

	mount := options.Configuration.Mount
	host := NewHost(mount, write)

	var opts []widget.Option
	if queue, ok := options.Queue.Get(); ok {
		opts = append(opts, widget.WithQueue(queue))
	}

	player, err := widget.New(host, options.Configuration, options.Ad, options.Main, opts...)
	if err != nil {
		return err
	}
	defer func() {
		player.Sync()
		player.Destroy()
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if options.Tick > 0 {
		for _, el := range []engine.Element{options.Ad, options.Main} {
			if runner, ok := el.(engine.Runner); ok {
				go runner.Run(ctx, options.Tick)
			}
		}
	}

	scanner := bufio.NewScanner(options.In)
	for scanner.Scan() {
		line := scanner.Text()
		if len(line) == 0 || line[0] == '#' {
			continue
		}

		cmd, err := ParseCommand(line, mount)
		if err != nil {
			if err := report(err); err != nil {
				return err
			}
			continue
		}

		log.Debugf("inline: %s", cmd.Name)

		if cmd.Quit {
			break
		}

		if in, ok := cmd.Input.Get(); ok {
			host.Dispatch(in)
		}

		if call, ok := cmd.Call.Get(); ok {
			call(player)
		}

		if cmd.Wait > 0 {
			time.Sleep(cmd.Wait)
		}

		if cmd.Print {
			player.Sync()

			mu.Lock()
			seen = false
			mu.Unlock()
			write(player.State())
		}
	}

	if err := scanner.Err(); err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	return nil
}
