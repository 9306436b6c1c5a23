package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/paleotronic/a2catalog/dos33"
	"github.com/paleotronic/a2catalog/loggy"
)

// catalogEntryJSON is the wire shape of one catalog entry.
type catalogEntryJSON struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Kind    string `json:"kind"`
	Locked  bool   `json:"locked"`
	Deleted bool   `json:"deleted"`
	Sectors int    `json:"sectors"`
}

type diskServer struct {
	dsk *dos33.DiskImage
	log *loggy.Logger
}

func serve(dsk *dos33.DiskImage, addr string) error {

	s := &diskServer{dsk: dsk, log: loggy.Get(0)}

	r := mux.NewRouter()
	r.HandleFunc("/catalog", s.handleCatalog).Methods("GET")
	r.HandleFunc("/files/{name}", s.handleFile).Methods("GET")
	r.HandleFunc("/files/{name}/raw", s.handleFileRaw).Methods("GET")

	s.log.Logf("Serving %s on %s", dsk.Filename, addr)

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return srv.ListenAndServe()
}

func (s *diskServer) handleCatalog(w http.ResponseWriter, r *http.Request) {

	entries, err := s.dsk.Catalog()
	if err != nil {
		s.fail(w, err)
		return
	}

	out := make([]catalogEntryJSON, 0, len(entries))
	for _, fd := range entries {
		out = append(out, catalogEntryJSON{
			Name:    fd.Name(),
			Type:    fd.Type().Letter(),
			Kind:    fd.Type().String(),
			Locked:  fd.IsLocked(),
			Deleted: fd.IsDeleted(),
			Sectors: fd.SectorCount(),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

func (s *diskServer) lookup(w http.ResponseWriter, r *http.Request) *dos33.FileEntry {

	name := strings.ToUpper(mux.Vars(r)["name"])

	fd, err := s.dsk.NamedEntry(name)
	if err != nil {
		http.Error(w, "no such file: "+name, http.StatusNotFound)
		return nil
	}
	return fd
}

func (s *diskServer) handleFile(w http.ResponseWriter, r *http.Request) {

	fd := s.lookup(w, r)
	if fd == nil {
		return
	}

	data, err := decodeForExport(s.dsk, fd)
	if err != nil {
		s.fail(w, err)
		return
	}

	switch fd.Type() {
	case dos33.FileTypeTXT, dos33.FileTypeAPP, dos33.FileTypeINT:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	default:
		w.Header().Set("Content-Type", "application/octet-stream")
	}
	w.Write(data)
}

func (s *diskServer) handleFileRaw(w http.ResponseWriter, r *http.Request) {

	fd := s.lookup(w, r)
	if fd == nil {
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	if _, err := s.dsk.WriteFileTo(fd, w); err != nil {
		s.log.Errorf("Streaming %s: %v", fd.Name(), err)
	}
}

func (s *diskServer) fail(w http.ResponseWriter, err error) {

	s.log.Errorf("Request failed: %v", err)

	code := http.StatusInternalServerError
	if errors.Is(err, dos33.ErrMalformedRecord) || errors.Is(err, dos33.ErrLengthMismatch) {
		code = http.StatusUnprocessableEntity
	}
	http.Error(w, err.Error(), code)
}
