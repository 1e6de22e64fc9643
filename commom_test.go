package pipelog

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func Test_DefaultLevelStyles(t *testing.T) {
	styles := DefaultLevelStyles()
	assert.Equal(t, map[string]string{
		LevelDebug:   "\033[32m",
		LevelInfo:    "\033[36m",
		LevelWarning: "\033[33m\033[1m",
		LevelError:   "\033[31m\033[1m",
	}, styles)
	styles[LevelDebug] = "changed"
	assert.Equal(t, "\033[32m", DefaultLevelStyles()[LevelDebug], "shared style table returned")
}

func Test_Parallel_Multithreading(t *testing.T) {
	const (
		_MAXDATALEN_ = 200 // Max len of message to be logged
		_DATACOUNT_  = 200 // Number of messages every goroutine/client has to log
		_GOROUTINES_ = 64  // Number of simultaneous goroutines/clients logging
	)

	//Rand := rand.New(rand.NewSource(0)) // repeatable results
	Rand := rand.New(rand.NewSource(time.Now().UnixNano())) // stochastic

	// Printable random data, without tabs, newlines and escape introducers
	// so every line can be split back into its fields
	data := make([]string, _DATACOUNT_)
	for i := range data {
		b := make([]byte, Rand.Intn(_MAXDATALEN_)+1)
		for j := range b {
			const first, last = 33, 126
			b[j] = byte(Rand.Intn(last+1-first)) + first
		}
		data[i] = string(b)
	}

	ferr := &FakeWriter{} // fallback - has to be clear after job done
	plain := &FakeWriter{}
	colored := &FakeWriter{}
	r := newTestRouter(ferr).ApplyDefaultStyles().
		AddWriterSink(plain, false, FilterSpec{}).
		AddWriterSink(colored, true, FilterSpec{Levels: []string{LevelError}})

	levels := []string{LevelDebug, LevelInfo, LevelWarning, LevelError}
	var g errgroup.Group
	hold := make(chan struct{})
	for n := range _GOROUTINES_ {
		h := r.NewHandle(fmt.Sprintf("%03d", n))
		g.Go(func() error {
			<-hold // start all together
			for i := range _DATACOUNT_ {
				h.Print(levels[i%len(levels)], strconv.Itoa(i)+":"+data[i])
			}
			return nil
		})
	}
	close(hold)
	require.NoError(t, g.Wait())

	assert.Empty(t, ferr.buffer, "unexpected fallback errors writes")
	assert.Equal(t, _GOROUTINES_*_DATACOUNT_, plain.writes)

	// Every line has to be complete and every client's lines in order
	lines := strings.Split(strings.TrimSuffix(plain.String(), "\n"), "\n")
	require.Len(t, lines, _GOROUTINES_*_DATACOUNT_)
	next := map[string]int{}
	for pos, line := range lines {
		fields := strings.Split(line, "\t")
		require.Len(t, fields, 4, "line %d broken: %q", pos, line)
		source := fields[2]
		num, text, ok := strings.Cut(fields[3], ":")
		require.True(t, ok, "line %d broken: %q", pos, line)
		i, err := strconv.Atoi(num)
		require.NoError(t, err, "line %d broken: %q", pos, line)
		require.Equal(t, next[source], i, "client %s lines out of order", source)
		require.Equal(t, data[i], text, "client %s line %d mismatch", source, i)
		next[source] = i + 1
	}
	assert.Len(t, next, _GOROUTINES_)

	// The colored sink only gets the ERROR lines
	lines = strings.Split(strings.TrimSuffix(colored.String(), "\n"), "\n")
	require.Len(t, lines, _GOROUTINES_*_DATACOUNT_/len(levels))
	for _, line := range lines {
		require.Contains(t, line, "\t[\033[31m\033[1mERROR\033[0m]\t")
	}
}
