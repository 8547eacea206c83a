package playback

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	vlc "github.com/adrg/libvlc-go/v3"
)

// tickInterval is how often a playing pane reports its media time.
const tickInterval = 250 * time.Millisecond

// Pane is one libVLC player belonging to an Engine. Time progress is
// reported by a polling ticker rather than from libVLC event threads, so
// callbacks never re-enter libVLC; the end-of-media event only signals the
// ticker goroutine.
type Pane struct {
	engine *Engine
	p      *vlc.Player
	media  *vlc.Media

	// internal lock for Pane fields (not for libVLC)
	mu     sync.Mutex
	onTime func(ms int64)
	onEnd  func()

	endEvent   vlc.EventID
	endCh      chan struct{}
	tickCancel context.CancelFunc
	tickWG     sync.WaitGroup
}

// NewPane creates a stopped player on the engine.
func (e *Engine) NewPane() (*Pane, error) {
	e.vlcMu.Lock()
	p, err := vlc.NewPlayer()
	e.vlcMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("new vlc player failed: %w", err)
	}
	pane := &Pane{engine: e, p: p, endCh: make(chan struct{}, 1)}

	manager, err := p.EventManager()
	if err != nil {
		e.vlcMu.Lock()
		p.Release()
		e.vlcMu.Unlock()
		return nil, fmt.Errorf("vlc event manager failed: %w", err)
	}
	id, err := manager.Attach(vlc.MediaPlayerEndReached, func(vlc.Event, interface{}) {
		select {
		case pane.endCh <- struct{}{}:
		default:
		}
	}, nil)
	if err != nil {
		e.vlcMu.Lock()
		p.Release()
		e.vlcMu.Unlock()
		return nil, fmt.Errorf("vlc event attach failed: %w", err)
	}
	pane.endEvent = id

	ctx, cancel := context.WithCancel(context.Background())
	pane.tickCancel = cancel
	pane.tickWG.Add(1)
	go pane.tick(ctx)

	e.panes[pane] = struct{}{}
	return pane, nil
}

// SetTimeCallback registers the media-time observer. It fires roughly four
// times a second while media plays.
func (pn *Pane) SetTimeCallback(fn func(ms int64)) {
	pn.mu.Lock()
	pn.onTime = fn
	pn.mu.Unlock()
}

// SetEndCallback registers the end-of-media observer.
func (pn *Pane) SetEndCallback(fn func()) {
	pn.mu.Lock()
	pn.onEnd = fn
	pn.mu.Unlock()
}

// Load replaces the pane's media with a local file. Playback does not start.
func (pn *Pane) Load(path string) error {
	m, err := vlc.NewMediaFromPath(strings.TrimSpace(path))
	if err != nil {
		return fmt.Errorf("new media from path failed: %w", err)
	}

	pn.engine.vlcMu.Lock()
	defer pn.engine.vlcMu.Unlock()
	if pn.media != nil {
		pn.media.Release()
		pn.media = nil
	}
	if err := pn.p.SetMedia(m); err != nil {
		m.Release()
		return fmt.Errorf("set media failed: %w", err)
	}
	pn.media = m
	return nil
}

// Play starts or resumes playback.
func (pn *Pane) Play() {
	pn.engine.vlcMu.Lock()
	err := pn.p.Play()
	pn.engine.vlcMu.Unlock()
	if err != nil {
		log.Printf("playback: play: %v", err)
	}
}

// Pause suspends playback, keeping the position.
func (pn *Pane) Pause() {
	pn.engine.vlcMu.Lock()
	err := pn.p.SetPause(true)
	pn.engine.vlcMu.Unlock()
	if err != nil {
		log.Printf("playback: pause: %v", err)
	}
}

// Position returns the current media time in milliseconds.
func (pn *Pane) Position() int64 {
	pn.engine.vlcMu.Lock()
	t, err := pn.p.MediaTime()
	pn.engine.vlcMu.Unlock()
	if err != nil {
		return 0
	}
	return int64(t)
}

// SetPosition seeks to the given media time in milliseconds.
func (pn *Pane) SetPosition(ms int64) {
	pn.engine.vlcMu.Lock()
	err := pn.p.SetMediaTime(int(ms))
	pn.engine.vlcMu.Unlock()
	if err != nil {
		log.Printf("playback: seek: %v", err)
	}
}

// Duration returns the media length in milliseconds, 0 when unknown.
func (pn *Pane) Duration() int64 {
	pn.engine.vlcMu.Lock()
	l, err := pn.p.MediaLength()
	pn.engine.vlcMu.Unlock()
	if err != nil || l < 0 {
		return 0
	}
	return int64(l)
}

// SetRate applies a playback speed multiplier.
func (pn *Pane) SetRate(rate float64) {
	pn.engine.vlcMu.Lock()
	err := pn.p.SetPlaybackRate(float32(rate))
	pn.engine.vlcMu.Unlock()
	if err != nil {
		log.Printf("playback: rate: %v", err)
	}
}

// SetVolume applies a linear volume in [0, 1] as a libVLC percentage.
func (pn *Pane) SetVolume(vol float64) {
	pct := int(vol*100 + 0.5)
	if pct < 0 {
		pct = 0
	} else if pct > 100 {
		pct = 100
	}
	pn.engine.vlcMu.Lock()
	err := pn.p.SetVolume(pct)
	pn.engine.vlcMu.Unlock()
	if err != nil {
		log.Printf("playback: volume: %v", err)
	}
}

// Close stops the ticker and frees the player and its media.
func (pn *Pane) Close() {
	if pn.tickCancel != nil {
		pn.tickCancel()
		pn.tickWG.Wait()
		pn.tickCancel = nil
	}
	delete(pn.engine.panes, pn)

	pn.engine.vlcMu.Lock()
	defer pn.engine.vlcMu.Unlock()
	if pn.p != nil {
		if manager, err := pn.p.EventManager(); err == nil {
			manager.Detach(pn.endEvent)
		}
		_ = pn.p.Stop()
		pn.p.Release()
		pn.p = nil
	}
	if pn.media != nil {
		pn.media.Release()
		pn.media = nil
	}
}

// tick reports media time while playing and forwards end-of-media signals.
func (pn *Pane) tick(ctx context.Context) {
	defer pn.tickWG.Done()
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-pn.endCh:
			pn.mu.Lock()
			cb := pn.onEnd
			pn.mu.Unlock()
			if cb != nil {
				cb()
			}
		case <-ticker.C:
			pn.engine.vlcMu.Lock()
			playing := pn.p != nil && pn.p.IsPlaying()
			var t int
			var err error
			if playing {
				t, err = pn.p.MediaTime()
			}
			pn.engine.vlcMu.Unlock()
			if !playing || err != nil {
				continue
			}
			pn.mu.Lock()
			cb := pn.onTime
			pn.mu.Unlock()
			if cb != nil {
				cb(int64(t))
			}
		}
	}
}
