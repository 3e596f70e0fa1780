package mover_test

import (
	"errors"
	"io"

	"sparsemv/internal/mover"
	"sparsemv/internal/sparse"
)

var errInjected = errors.New("injected failure")

type span struct {
	off, length int64
}

// fakeSource is an in-memory sparse file. Only the bytes covered by data
// spans are reported by SeekData.
type fakeSource struct {
	content []byte
	data    []span
	pos     int64

	maxRead   int // caps every Read when set
	truncAt   int64
	reads     int
	punched   []span
	failSeek  bool
	failRead  bool
	failPunch bool
}

func newFakeSource(content []byte, data ...span) *fakeSource {
	return &fakeSource{content: content, data: data, truncAt: -1}
}

func (s *fakeSource) Name() string { return "fake-src" }

func (s *fakeSource) SeekData(off int64) (int64, error) {
	if s.failSeek {
		return 0, errInjected
	}
	for _, d := range s.data {
		if off < d.off+d.length {
			if off < d.off {
				off = d.off
			}
			s.pos = off
			return off, nil
		}
	}
	return 0, sparse.ErrNoData
}

func (s *fakeSource) Read(p []byte) (int, error) {
	s.reads++
	if s.failRead {
		return 0, errInjected
	}
	end := int64(len(s.content))
	if s.truncAt >= 0 {
		end = s.truncAt
	}
	if s.pos >= end {
		return 0, io.EOF
	}
	if s.maxRead > 0 && len(p) > s.maxRead {
		p = p[:s.maxRead]
	}
	n := copy(p, s.content[s.pos:end])
	s.pos += int64(n)
	return n, nil
}

func (s *fakeSource) PunchHole(off, length int64) error {
	if s.failPunch {
		return errInjected
	}
	s.punched = append(s.punched, span{off, length})
	for i := off; i < off+length && i < int64(len(s.content)); i++ {
		s.content[i] = 0
	}
	return nil
}

// fakeDestination records writes into a growable buffer
type fakeDestination struct {
	content  []byte
	pos      int64
	writes   []span
	punched  []span
	maxWrite int

	failSeek  bool
	failWrite bool
	failPunch bool
}

func (d *fakeDestination) Name() string { return "fake-dst" }

func (d *fakeDestination) Seek(off int64, whence int) (int64, error) {
	if d.failSeek {
		return 0, errInjected
	}
	if whence != io.SeekStart {
		return 0, errors.New("unsupported whence")
	}
	d.pos = off
	return off, nil
}

func (d *fakeDestination) Write(p []byte) (int, error) {
	if d.failWrite {
		return 0, errInjected
	}
	if d.maxWrite > 0 && len(p) > d.maxWrite {
		p = p[:d.maxWrite]
	}
	end := d.pos + int64(len(p))
	if end > int64(len(d.content)) {
		grown := make([]byte, end)
		copy(grown, d.content)
		d.content = grown
	}
	copy(d.content[d.pos:], p)
	d.writes = append(d.writes, span{d.pos, int64(len(p))})
	d.pos = end
	return len(p), nil
}

func (d *fakeDestination) PunchHole(off, length int64) error {
	if d.failPunch {
		return errInjected
	}
	d.punched = append(d.punched, span{off, length})
	return nil
}

// recordingReporter keeps every callback it receives
type recordingReporter struct {
	updates  []mover.Progress
	complete *mover.Stats
	err      error
}

func (r *recordingReporter) OnProgress(p mover.Progress) { r.updates = append(r.updates, p) }

func (r *recordingReporter) OnComplete(s mover.Stats) { r.complete = &s }

func (r *recordingReporter) OnError(err error) { r.err = err }
