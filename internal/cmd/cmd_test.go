package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/yuzeguitarist/qrgen/internal/config"
	"github.com/yuzeguitarist/qrgen/internal/qr"
	"go.uber.org/zap"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	resetFlags(rootCmd)
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		resetFlags(rootCmd)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

// resetFlags puts every flag in the tree back to its default, since the
// commands are package globals shared by all tests.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func TestRenderCommand(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	dir := t.TempDir()

	png := filepath.Join(dir, "code.png")
	if _, err := run(t, "render", "--text", "hello", "--out", png); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(png)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(b, []byte{0x89, 'P', 'N', 'G'}) {
		t.Fatal("not png")
	}

	svg := filepath.Join(dir, "code.svg")
	out, err := run(t, "render", "--text", "hello", "--out", svg, "--fill", "teal", "--box-size", "4")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Wrote:") {
		t.Fatalf("output %q", out)
	}
	b, _ = os.ReadFile(svg)
	if !bytes.Contains(b, []byte("<svg")) || !bytes.Contains(b, []byte("#008080")) {
		t.Fatalf("bad svg: %s", b)
	}
}

func TestRenderCommandRejectsInvalid(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	out, err := run(t, "render", "--text", "hello", "--out", filepath.Join(t.TempDir(), "x.png"), "--box-size", "50")
	if !errors.Is(err, qr.ErrInvalidOptions) {
		t.Fatalf("got %v, want ErrInvalidOptions", err)
	}
	if !strings.Contains(out, "box_size:") {
		t.Fatalf("output %q", out)
	}
}

func TestParamsCommand(t *testing.T) {
	out, err := run(t, "params")
	if err != nil {
		t.Fatal(err)
	}
	var p qr.Params
	if err := json.Unmarshal([]byte(out), &p); err != nil {
		t.Fatal(err)
	}
	if p.BoxSize != qr.Describe().BoxSize || p.Border != qr.Describe().Border {
		t.Fatalf("unexpected params %+v", p)
	}
	if p.Text.MaxLength != qr.MaxTextLength || len(p.Format.Options) != 2 {
		t.Fatalf("unexpected params %+v", p)
	}
}

func TestConfigCommand(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	t.Setenv("QRGEN_LISTEN", "127.0.0.1:9100")
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("logLevel: debug\n"), 0600); err != nil {
		t.Fatal(err)
	}
	out, err := run(t, "config", "--config", path)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"listen: 127.0.0.1:9100", "logLevel: debug"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in %q", want, out)
		}
	}
}

func TestFlagsOverrideEnvAndFile(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	t.Setenv("QRGEN_LISTEN", "127.0.0.1:9100")
	t.Setenv("QRGEN_LOG_LEVEL", "error")
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("listen: 127.0.0.1:9000\nlogLevel: debug\n"), 0600); err != nil {
		t.Fatal(err)
	}
	out, err := run(t, "config", "--config", path, "--listen", "127.0.0.1:9200", "--log-level", "warn", "--open")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"listen: 127.0.0.1:9200", "logLevel: warn", "openBrowser: true"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in %q", want, out)
		}
	}

	// without flags the environment beats the file again
	out, err = run(t, "config", "--config", path)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"listen: 127.0.0.1:9100", "logLevel: error", "openBrowser: false"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in %q", want, out)
		}
	}
}

func TestRenderFlagsDoNotLeak(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	dir := t.TempDir()
	if _, err := run(t, "render", "--text", "a", "--out", filepath.Join(dir, "a.svg"), "--fill", "teal", "--box-size", "3"); err != nil {
		t.Fatal(err)
	}
	svg := filepath.Join(dir, "b.svg")
	if _, err := run(t, "render", "--text", "a", "--out", svg); err != nil {
		t.Fatal(err)
	}
	b, _ := os.ReadFile(svg)
	if bytes.Contains(b, []byte("#008080")) || !bytes.Contains(b, []byte(`fill="#000000"`)) {
		t.Fatalf("fill from an earlier run leaked: %s", b)
	}
}

func TestServeShutsDownOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	cfg := config.Default()
	cfg.ShutdownTimeout = 2 * time.Second

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var out bytes.Buffer
	errc := make(chan error, 1)
	go func() { errc <- serve(ctx, ln, cfg, zap.NewNop(), &out) }()

	base := browseURL(ln.Addr())
	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(base + "healthz")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("healthz status %d", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-errc:
		if err != nil {
			t.Fatalf("serve returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after cancel")
	}
	if !strings.Contains(out.String(), "Listening:") || !strings.Contains(out.String(), base) {
		t.Fatalf("output %q", out.String())
	}

	client.CloseIdleConnections()
	if _, err := client.Get(base + "healthz"); err == nil {
		t.Fatal("server still accepting after shutdown")
	}
}

func TestBrowseURL(t *testing.T) {
	cases := map[string]string{
		"127.0.0.1:8000": "http://127.0.0.1:8000/",
		"0.0.0.0:8000":   "http://127.0.0.1:8000/",
		"[::]:9000":      "http://127.0.0.1:9000/",
		"[::1]:9000":     "http://[::1]:9000/",
	}
	for in, want := range cases {
		addr, err := net.ResolveTCPAddr("tcp", in)
		if err != nil {
			t.Fatal(err)
		}
		if got := browseURL(addr); got != want {
			t.Errorf("%s: got %s, want %s", in, got, want)
		}
	}
}
