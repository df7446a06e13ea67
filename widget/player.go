// Package widget sequences a thumbnail, a pre-roll advertisement and the main content,
// and keeps the control surface in step with the media elements behind it.
//
// Every input reaches the player through one ordered Queue: element notifications,
// pointer and key input, control activations and timer expiry. After each handler the
// player renders a fresh View to its surface.
package widget

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/preroll-cli/preroll/engine"
	"github.com/preroll-cli/preroll/log"
	"github.com/preroll-cli/preroll/util"
	"github.com/sirupsen/logrus"
)

// syncRounds bounds Sync while running elements keep the queue busy.
const syncRounds = 8

// Player is one embedded instance. Create it with New and release it with Destroy.
type Player struct {
	cfg     Configuration
	host    Host
	surface Surface
	ad      engine.Element
	main    engine.Element
	queue   Queue
	clock   Clock
	subs    Subscriptions
	logger  *logrus.Entry

	seq      *sequencer
	mirror   *mirror
	vis      *visibility
	settings *settings

	viewMu sync.RWMutex
	view   View

	destroyed atomic.Bool
	released  chan struct{}
}

// Option customizes a Player.
type Option func(*Player)

// WithClock replaces the system clock used by the auto-hide timer.
func WithClock(clock Clock) Option {
	return func(p *Player) {
		p.clock = clock
	}
}

// WithQueue replaces the default goroutine-backed Loop.
func WithQueue(queue Queue) Option {
	return func(p *Player) {
		p.queue = queue
	}
}

// New attaches a player to the surface registered under cfg.Mount.
// It fails with a *ConfigurationError when the configuration is invalid or the mount cannot be resolved.
func New(host Host, cfg Configuration, ad, main engine.Element, opts ...Option) (*Player, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if host == nil {
		return nil, &ConfigurationError{Mount: cfg.Mount, Reason: "no host to resolve the mount target"}
	}

	surface, ok := host.Resolve(cfg.Mount)
	if !ok || surface == nil {
		return nil, &ConfigurationError{Mount: cfg.Mount, Reason: "mount target not found"}
	}

	if ad == nil || main == nil {
		return nil, &ConfigurationError{Mount: cfg.Mount, Reason: "both media elements are required"}
	}

	p := &Player{
		cfg:      cfg,
		host:     host,
		surface:  surface,
		ad:       ad,
		main:     main,
		logger:   log.WithFields(logrus.Fields{"mount": cfg.Mount}),
		seq:      newSequencer(cfg.Ad.SkipAfter),
		mirror:   newMirror(main.Volume()),
		settings: newSettings(),
		released: make(chan struct{}),
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.queue == nil {
		p.queue = NewLoop()
	}
	if p.clock == nil {
		p.clock = SystemClock()
	}

	p.vis = newVisibility(p.clock, cfg.AutoHideDelay, p.dispatch)
	p.view = p.snapshot()

	p.subs.Add(ad.Subscribe(func(ev engine.Event) {
		p.dispatch(func() { p.onAd(ev) })
	}))
	p.subs.Add(main.Subscribe(func(ev engine.Event) {
		p.dispatch(func() { p.onMain(ev) })
	}))
	p.subs.Add(surface.Listen(func(in Input) {
		p.dispatch(func() { p.onInput(in) })
	}))
	p.subs.Add(host.Listen(func(in Input) {
		p.dispatch(func() { p.onInput(in) })
	}))

	p.show(ad, false)
	p.show(main, false)

	p.logger.Info("player created")
	p.dispatch(func() {})

	return p, nil
}

// dispatch queues fn and renders the resulting view.
func (p *Player) dispatch(fn func()) bool {
	return p.queue.Post(func() {
		if p.destroyed.Load() {
			return
		}
		fn()
		p.publish()
	})
}

func (p *Player) publish() {
	view := p.snapshot()

	p.viewMu.Lock()
	p.view = view
	p.viewMu.Unlock()

	p.surface.Render(view)
}

func (p *Player) snapshot() View {
	view := View{
		Mount:              p.cfg.Mount,
		Stage:              p.seq.stage,
		SectionTitle:       p.cfg.SectionTitle,
		SectionDescription: p.cfg.SectionDescription,
		Title:              p.cfg.Main.Title,
		Description:        p.cfg.Main.Description,
		Caption:            p.cfg.Caption,
		Thumbnail:          p.cfg.Thumbnail,
		Paused:             p.mirror.paused,
		Loading:            p.mirror.loading,
		Progress:           p.mirror.progress,
		Elapsed:            p.mirror.elapsed,
		Total:              p.mirror.total,
		Volume:             int(math.Round(p.mirror.volume * 100)),
		Muted:              p.mirror.volume == 0,
		Fullscreen:         p.mirror.fullscreen,
		ControlsVisible:    p.seq.stage == StageMain && p.vis.Visible(),
		Menu:               p.settings.menu,
		Speed:              Speeds[p.settings.speed],
		SpeedLabel:         SpeedLabel(Speeds[p.settings.speed]),
		Quality:            Qualities[p.settings.quality],
	}

	if p.seq.stage == StageAd {
		view.Ad = AdView{AdProgress: p.seq.progress, Countdown: p.seq.countdown()}
	}

	return view
}

// State returns the most recently rendered view.
func (p *Player) State() View {
	p.viewMu.RLock()
	defer p.viewMu.RUnlock()
	return p.view
}

// Sync blocks until the queue has drained the tasks posted before the call, along with the
// notifications they caused, or the player is destroyed. Calling it from a queued task deadlocks a Loop.
func (p *Player) Sync() {
	for i := 0; i < syncRounds; i++ {
		idle := make(chan bool, 1)
		if !p.queue.Post(func() { idle <- p.queue.Len() == 0 }) {
			return
		}

		select {
		case ok := <-idle:
			if ok {
				return
			}
		case <-p.released:
			return
		}
	}
}

// Play resumes the active stage. In the thumbnail stage it starts the sequence.
func (p *Player) Play() {
	p.dispatch(func() {
		switch p.seq.stage {
		case StageThumbnail:
			p.start()
		case StageAd:
			p.check("play ad", p.ad.Play())
		case StageMain:
			p.check("play", p.main.Play())
		}
	})
}

// Pause suspends the active element.
func (p *Player) Pause() {
	p.dispatch(func() {
		switch p.seq.stage {
		case StageAd:
			p.check("pause ad", p.ad.Pause())
		case StageMain:
			p.check("pause", p.main.Pause())
		}
	})
}

// SetVolume sets the main element's volume, clamped to [0,1].
func (p *Player) SetVolume(v float64) {
	p.dispatch(func() { p.applyVolume(v) })
}

// SeekTo moves the main element to seconds, clamped to [0, Duration]. It has no effect before the main stage.
func (p *Player) SeekTo(seconds float64) {
	p.dispatch(func() {
		if p.seq.stage != StageMain || math.IsNaN(seconds) {
			return
		}
		p.seekTo(SeekOffset(seconds, p.main.Duration(), 0))
	})
}

// CurrentTime reads the main element's position.
func (p *Player) CurrentTime() float64 {
	return p.main.Position()
}

// Duration reads the main element's length, or 0 while it is unknown.
func (p *Player) Duration() float64 {
	d := p.main.Duration()
	if !util.Known(d) {
		return 0
	}
	return d
}

// Destroy cancels the auto-hide timer, releases every subscription, closes both elements and stops the queue.
// Calling it more than once has no effect.
func (p *Player) Destroy() {
	if !p.destroyed.CompareAndSwap(false, true) {
		return
	}

	close(p.released)
	p.vis.stop()
	p.subs.Release()
	p.check("close ad", p.ad.Close())
	p.check("close main", p.main.Close())
	p.queue.Stop()

	p.logger.Info("player destroyed")
}

func (p *Player) onAd(ev engine.Event) {
	if p.seq.stage != StageAd {
		return
	}

	switch ev.Kind {
	case engine.PositionUpdated, engine.MetadataLoaded:
		p.seq.observe(ev.Position, ev.Duration)
	case engine.Ended:
		p.advance()
	}
}

func (p *Player) onMain(ev engine.Event) {
	if p.seq.stage != StageMain {
		return
	}

	if playing, changed := p.mirror.onMain(ev); changed {
		p.vis.setPlaying(playing)
	}
}

func (p *Player) onInput(in Input) {
	switch in := in.(type) {
	case KeyInput:
		p.onKey(in)
	case PointerInput:
		p.onPointer(in)
	case ControlInput:
		p.onControl(in)
	}
}

func (p *Player) onPointer(in PointerInput) {
	switch in.Kind {
	case PointerMove:
		switch in.Region {
		case RegionPlayer:
			p.vis.pointerOverPlayer()
		case RegionControls:
			p.vis.pointerOverControls()
		}
	case PointerLeave:
		p.vis.pointerLeft()
	case PointerClick:
		if in.Within != p.cfg.Mount && p.settings.open() {
			p.settings.close()
			p.vis.setSettingsOpen(false)
		}
	}
}

func (p *Player) onControl(in ControlInput) {
	switch in.Control {
	case ControlPlay:
		p.start()
		return
	case ControlSkip:
		if p.seq.stage == StageAd && p.seq.progress.SkipEligible {
			p.advance()
		}
		return
	}

	if p.seq.stage != StageMain {
		return
	}

	switch in.Control {
	case ControlPlayPause:
		p.togglePlayback()
	case ControlSeekBackward:
		p.seekBy(-p.cfg.SkipBackward)
	case ControlSeekForward:
		p.seekBy(p.cfg.SkipForward)
	case ControlMute:
		p.applyVolume(ToggleMute(p.mirror.volume))
	case ControlFullscreen:
		p.toggleFullscreen()
	case ControlTrack:
		if d := p.main.Duration(); util.Known(d) && !math.IsNaN(in.Value) {
			p.seekTo(util.Clamp(in.Value, 0, 1) * d)
		}
	case ControlVolumeSlider:
		p.applyVolume(in.Value / 100)
	case ControlSettings:
		p.settings.toggle()
		p.vis.setSettingsOpen(p.settings.open())
	case ControlSpeedMenu:
		p.settings.submenu(MenuSpeed)
		p.vis.setSettingsOpen(true)
	case ControlQualityMenu:
		p.settings.submenu(MenuQuality)
		p.vis.setSettingsOpen(true)
	case ControlSpeedOption:
		if rate, ok := p.settings.selectSpeed(in.Index); ok {
			p.check("set playback rate", p.main.SetPlaybackRate(rate))
			p.vis.setSettingsOpen(false)
		}
	case ControlQualityOption:
		if p.settings.selectQuality(in.Index) {
			p.logger.Debugf("quality label set to %s", Qualities[in.Index])
			p.vis.setSettingsOpen(false)
		}
	}
}

// start leaves the thumbnail for the ad, or for the main content when no ad is configured.
func (p *Player) start() {
	stage, ok := p.seq.start(p.cfg.Ad.Source != "")
	if !ok {
		return
	}
	p.logger.Debugf("stage %s -> %s", StageThumbnail, stage)

	if stage == StageMain {
		p.enterMain()
		return
	}

	p.check("load ad", p.ad.Load(p.cfg.Ad.Source))
	p.show(p.ad, true)
	p.check("play ad", p.ad.Play())
}

// advance ends the ad: it is paused, rewound and hidden, and the main content starts.
func (p *Player) advance() {
	if !p.seq.advance() {
		return
	}
	p.logger.Debugf("stage %s -> %s", StageAd, StageMain)

	p.check("pause ad", p.ad.Pause())
	p.check("rewind ad", p.ad.SetPosition(0))
	p.show(p.ad, false)
	p.enterMain()
}

func (p *Player) enterMain() {
	p.check("load main", p.main.Load(p.cfg.Main.Source))
	p.show(p.main, true)
	p.check("play main", p.main.Play())
}

func (p *Player) togglePlayback() {
	if p.mirror.paused {
		p.check("play", p.main.Play())
	} else {
		p.check("pause", p.main.Pause())
	}
}

func (p *Player) seekBy(delta float64) {
	p.seekTo(SeekOffset(p.main.Position(), p.main.Duration(), delta))
}

func (p *Player) seekTo(seconds float64) {
	p.check("seek", p.main.SetPosition(seconds))
}

func (p *Player) applyVolume(v float64) {
	v = ClampVolume(v)
	if err := p.main.SetVolume(v); err != nil {
		p.check("set volume", err)
		return
	}
	p.mirror.volume = v
}

func (p *Player) toggleFullscreen() {
	fs, ok := p.main.(engine.Fullscreener)
	if !ok {
		return
	}
	if err := fs.ToggleFullscreen(); err != nil {
		p.check("toggle fullscreen", err)
		return
	}
	p.mirror.fullscreen = !p.mirror.fullscreen
}

func (p *Player) show(el engine.Element, visible bool) {
	if v, ok := el.(engine.Visibility); ok {
		p.check("set visibility", v.SetVisible(visible))
	}
}

// check logs a failed element command. Failures never interrupt the handler.
func (p *Player) check(action string, err error) {
	if err != nil {
		p.logger.WithError(err).Warnf("%s failed", action)
	}
}
