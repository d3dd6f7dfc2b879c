package pine

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/uname-n/pine/internal/errkind"
)

// Stats summarizes the contents of a store.
type Stats struct {
	Clusters      int   `json:"clusters" yaml:"clusters"`
	EmptyClusters int   `json:"empty_clusters" yaml:"empty_clusters"`
	Members       int   `json:"members" yaml:"members"`
	IndexEntries  int   `json:"index_entries" yaml:"index_entries"`
	DiskBytes     int64 `json:"disk_bytes" yaml:"disk_bytes"`
	// BytesWritten counts record bytes written by this instance.
	BytesWritten int64 `json:"bytes_written" yaml:"bytes_written"`
	// CachedRepresentatives is always 0 unless WithRepresentativeCache is set.
	CachedRepresentatives int `json:"cached_representatives" yaml:"cached_representatives"`
}

// ClusterInfo describes one cluster directory.
type ClusterInfo struct {
	Name           string `json:"name" yaml:"name"`
	Path           string `json:"path" yaml:"path"`
	Representative string `json:"representative" yaml:"representative"`
	Members        int    `json:"members" yaml:"members"`
}

// Clusters describes every cluster in directory listing order.
func (p *Pine) Clusters() ([]ClusterInfo, error) {
	infos, err := p.clusters.Clusters()
	if err != nil {
		return nil, err
	}
	out := make([]ClusterInfo, len(infos))
	for i, info := range infos {
		out[i] = ClusterInfo{
			Name:           info.Name,
			Path:           info.Path,
			Representative: info.Representative,
			Members:        info.Members,
		}
	}
	return out, nil
}

// Stats walks the store and reports its current shape.
func (p *Pine) Stats() (Stats, error) {
	infos, err := p.clusters.Clusters()
	if err != nil {
		return Stats{}, err
	}
	s := Stats{
		Clusters:              len(infos),
		BytesWritten:          p.io.Written(),
		CachedRepresentatives: p.clusters.CachedRepresentatives(),
	}
	for _, info := range infos {
		s.Members += info.Members
		if info.Members == 0 {
			s.EmptyClusters++
		}
	}

	entries, err := p.fsys.ReadDir(p.indexPath())
	if err != nil {
		return Stats{}, errkind.New(errkind.IO, "stats", p.indexPath(), err)
	}
	for _, e := range entries {
		if e.Type().IsRegular() {
			s.IndexEntries++
		}
	}

	for _, dir := range []string{p.vectorsPath(), p.indexPath()} {
		n, err := p.diskUsage(dir)
		if err != nil {
			return Stats{}, err
		}
		s.DiskBytes += n
	}
	return s, nil
}

// diskUsage sums the sizes of the regular files below dir.
func (p *Pine) diskUsage(dir string) (int64, error) {
	entries, err := p.fsys.ReadDir(dir)
	if err != nil {
		return 0, errkind.New(errkind.IO, "stats", dir, err)
	}
	var total int64
	for _, e := range entries {
		switch {
		case e.IsDir():
			n, err := p.diskUsage(filepath.Join(dir, e.Name()))
			if err != nil {
				return 0, err
			}
			total += n
		case e.Type().IsRegular():
			info, err := e.Info()
			if errors.Is(err, os.ErrNotExist) {
				continue // removed since ReadDir
			}
			if err != nil {
				return 0, errkind.New(errkind.IO, "stats", filepath.Join(dir, e.Name()), err)
			}
			total += info.Size()
		}
	}
	return total, nil
}
