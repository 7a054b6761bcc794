package restyutil

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync/atomic"

	"github.com/go-resty/resty/v2"
)

// FilesystemOutput dumps raw HTTP exchanges to a directory, one file
// per request. only wired up behind the CLI's --debug-http flag.
type FilesystemOutput struct {
	directory string
	idcounter *uint64
}

func NewFilesystemOutput(dir string) FilesystemOutput {
	os.RemoveAll(dir)
	err := os.MkdirAll(dir, 0777)
	if err != nil {
		panic(err)
	}
	var idcounter uint64
	return FilesystemOutput{directory: dir, idcounter: &idcounter}
}

func (o FilesystemOutput) Write(id string, contents string) {
	err := os.WriteFile(filepath.Join(o.directory, id), []byte(contents), 0600)
	if err != nil {
		slog.Warn("failed to write message info file", "id", id, "err", err)
	}
}

func (o FilesystemOutput) Attach(client *resty.Client) {
	client.OnAfterResponse(func(_ *resty.Client, res *resty.Response) error {
		id := strconv.FormatUint(atomic.AddUint64(o.idcounter, 1), 10)
		o.Write(id, fmt.Sprintf(
			"%s %s\n\n%d\n\n%s",
			res.Request.Method, res.Request.URL,
			res.StatusCode(), res.String(),
		))
		return nil
	})
}
