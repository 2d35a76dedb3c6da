package probe

import (
	"context"
	"fmt"

	"github.com/stealthrocket/kmc/abi"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sys/unix"
)

const direntBufferSize = 8192

// Dir reads the entries of the directory at path with getdents64, then reads
// the status of each entry with fstatat, running up to concurrency calls in
// parallel.
func Dir(ctx context.Context, path string, concurrency int) (*Result, error) {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_DIRECTORY|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer unix.Close(fd)

	res := new(Result)
	var dirents []abi.DirEntry
	buf := make([]byte, direntBufferSize)
	for {
		n, err := unix.Getdents(fd, buf)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return nil, fmt.Errorf("getdents %s: %w", path, err)
		}
		if n == 0 {
			break
		}
		res.Dirents = append(res.Dirents, buf[:n]...)
		if dirents, _, err = abi.ParseDirents(buf[:n], dirents); err != nil {
			return nil, fmt.Errorf("decoding directory entries of %s: %w", path, err)
		}
	}

	res.Entries = make([]Entry, len(dirents))
	stats := make([]abi.LibcStat, len(dirents))

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(concurrency)
	for i := range dirents {
		i := i
		res.Entries[i] = newEntry(&dirents[i])
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			var st unix.Stat_t
			if err := unix.Fstatat(fd, res.Entries[i].Name, &st, unix.AT_SYMLINK_NOFOLLOW); err != nil {
				res.Entries[i].Error = err.Error()
				return nil
			}
			stats[i] = libcStat(&st)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	// Stat records go through their wire layout so the decoded entries are
	// what a harness reading the same bytes would see.
	for i := range stats {
		res.Stats = abi.AppendStat(res.Stats, &stats[i])
	}
	b := res.Stats
	for i := range res.Entries {
		st, rest, err := abi.ReadStat(b)
		if err != nil {
			return nil, err
		}
		b = rest
		if res.Entries[i].Error == "" {
			fs := st.FileStat()
			res.Entries[i].setStat(&fs)
		}
	}
	return res, nil
}

func libcStat(st *unix.Stat_t) abi.LibcStat {
	return abi.LibcStat{
		Dev:       uint64(st.Dev),
		Ino:       uint64(st.Ino),
		RawMode:   uint32(st.Mode),
		Nlink:     uint32(st.Nlink),
		Uid:       st.Uid,
		Gid:       st.Gid,
		Rdev:      uint64(st.Rdev),
		Size:      int64(st.Size),
		Blksize:   int32(st.Blksize),
		Blocks:    int64(st.Blocks),
		AtimeSec:  int64(st.Atim.Sec),
		AtimeNsec: int64(st.Atim.Nsec),
		MtimeSec:  int64(st.Mtim.Sec),
		MtimeNsec: int64(st.Mtim.Nsec),
		CtimeSec:  int64(st.Ctim.Sec),
		CtimeNsec: int64(st.Ctim.Nsec),
	}
}
