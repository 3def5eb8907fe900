// Package store implements the engine's persistence collaborator on
// top of plain files.  Each collection lives in its own line-delimited
// JSON file whose first line is a header naming the format and its
// version, so the layout is explicit and survives cross-platform moves;
// nothing depends on in-memory struct layout.  Writes go to a temp
// file in the same directory followed by a rename, so a crash mid-write
// leaves the previous snapshot intact.
package store

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/frocha1012/travel-reservation/internal/model"
)

const (
	formatVersion    = 1
	flightsFile      = "flights.jsonl"
	hotelsFile       = "hotels.jsonl"
	reservationsFile = "reservations.jsonl"
	lastIDFile       = "last_id.json"
)

// header is the first line of every collection file.
type header struct {
	Format  string `json:"format"`
	Version int    `json:"version"`
}

// FileStore persists the engine's state under a single data directory.
// The directory is created on construction if it does not exist.
type FileStore struct {
	dir string
}

// NewFileStore returns a store rooted at dir.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// LoadFlights reads the flight catalog.  A missing file means a fresh
// installation and yields an empty slice.
func (s *FileStore) LoadFlights() ([]model.Flight, error) {
	var out []model.Flight
	err := s.loadLines(flightsFile, "travel-reservation/flights", func(line []byte) error {
		var f model.Flight
		if err := json.Unmarshal(line, &f); err != nil {
			return err
		}
		out = append(out, f)
		return nil
	})
	return out, err
}

// StoreFlights replaces the persisted flight catalog with the given
// snapshot.
func (s *FileStore) StoreFlights(flights []model.Flight) error {
	return s.storeLines(flightsFile, "travel-reservation/flights", len(flights), func(i int) (any, error) {
		return flights[i], nil
	})
}

// LoadHotels reads the hotel catalog.
func (s *FileStore) LoadHotels() ([]model.Hotel, error) {
	var out []model.Hotel
	err := s.loadLines(hotelsFile, "travel-reservation/hotels", func(line []byte) error {
		var h model.Hotel
		if err := json.Unmarshal(line, &h); err != nil {
			return err
		}
		out = append(out, h)
		return nil
	})
	return out, err
}

// StoreHotels replaces the persisted hotel catalog.
func (s *FileStore) StoreHotels(hotels []model.Hotel) error {
	return s.storeLines(hotelsFile, "travel-reservation/hotels", len(hotels), func(i int) (any, error) {
		return hotels[i], nil
	})
}

// LoadReservations reads the reservation ledger in the order it was
// written, which is the ledger's insertion order.
func (s *FileStore) LoadReservations() ([]model.Reservation, error) {
	var out []model.Reservation
	err := s.loadLines(reservationsFile, "travel-reservation/reservations", func(line []byte) error {
		var r model.Reservation
		if err := json.Unmarshal(line, &r); err != nil {
			return err
		}
		out = append(out, r)
		return nil
	})
	return out, err
}

// StoreReservations replaces the persisted ledger.
func (s *FileStore) StoreReservations(recs []model.Reservation) error {
	return s.storeLines(reservationsFile, "travel-reservation/reservations", len(recs), func(i int) (any, error) {
		return recs[i], nil
	})
}

// lastIDRecord is the whole content of last_id.json.
type lastIDRecord struct {
	Format  string `json:"format"`
	Version int    `json:"version"`
	LastID  uint64 `json:"last_id"`
}

// LoadLastReservationID returns the last issued reservation id, or
// zero when none has ever been persisted.
func (s *FileStore) LoadLastReservationID() (uint64, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, lastIDFile))
	if errors.Is(err, os.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	var rec lastIDRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return 0, fmt.Errorf("parse %s: %w", lastIDFile, err)
	}
	if rec.Version != formatVersion {
		return 0, fmt.Errorf("%s: unsupported version %d", lastIDFile, rec.Version)
	}
	return rec.LastID, nil
}

// StoreLastReservationID durably records the last issued id.  The
// engine calls this before handing the id to anyone, so the write is
// forced through rename like every other file.
func (s *FileStore) StoreLastReservationID(id uint64) error {
	data, err := json.Marshal(lastIDRecord{
		Format:  "travel-reservation/last-id",
		Version: formatVersion,
		LastID:  id,
	})
	if err != nil {
		return err
	}
	return s.writeAtomic(lastIDFile, append(data, '\n'))
}

// loadLines opens a collection file, validates its header and feeds
// every subsequent line to fn.  A missing file is not an error.
func (s *FileStore) loadLines(name, format string, fn func(line []byte) error) error {
	f, err := os.Open(filepath.Join(s.dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return err
		}
		return nil // empty file, treat as no records
	}
	var h header
	if err := json.Unmarshal(sc.Bytes(), &h); err != nil {
		return fmt.Errorf("parse %s header: %w", name, err)
	}
	if h.Format != format || h.Version != formatVersion {
		return fmt.Errorf("%s: unexpected format %q version %d", name, h.Format, h.Version)
	}
	lineNo := 1
	for sc.Scan() {
		lineNo++
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		if err := fn(line); err != nil {
			return fmt.Errorf("%s line %d: %w", name, lineNo, err)
		}
	}
	return sc.Err()
}

// storeLines writes a header plus n records obtained from rec, then
// atomically replaces the target file.
func (s *FileStore) storeLines(name, format string, n int, rec func(i int) (any, error)) error {
	var buf []byte
	head, err := json.Marshal(header{Format: format, Version: formatVersion})
	if err != nil {
		return err
	}
	buf = append(buf, head...)
	buf = append(buf, '\n')
	for i := 0; i < n; i++ {
		v, err := rec(i)
		if err != nil {
			return err
		}
		line, err := json.Marshal(v)
		if err != nil {
			return err
		}
		buf = append(buf, line...)
		buf = append(buf, '\n')
	}
	return s.writeAtomic(name, buf)
}

// writeAtomic writes data to a temp file in the store directory, syncs
// it and renames it over the target.
func (s *FileStore) writeAtomic(name string, data []byte) error {
	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, filepath.Join(s.dir, name))
}
