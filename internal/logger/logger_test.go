package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := log
	log = slog.New(slog.NewTextHandler(&buf, nil))
	t.Cleanup(func() { log = old })
	return &buf
}

func TestWorkerLogCarriesExtraFields(t *testing.T) {
	buf := captureOutput(t)

	WorkerLog("mail", "job sent", "job_id", "job-1", "recipients", 3)

	out := buf.String()
	assert.Contains(t, out, "worker=mail")
	assert.Contains(t, out, `operation="job sent"`)
	assert.Contains(t, out, "job_id=job-1")
	assert.Contains(t, out, "recipients=3")
}

func TestWorkerLogWithoutExtraFields(t *testing.T) {
	buf := captureOutput(t)

	WorkerLog("mail", "stopped")

	out := buf.String()
	assert.Contains(t, out, "worker=mail")
	assert.Contains(t, out, "operation=stopped")
}

func TestWithErrorAttachesErrorField(t *testing.T) {
	buf := captureOutput(t)

	WithError(assert.AnError).Warn("delivery failed")

	assert.Contains(t, buf.String(), "delivery failed")
	assert.Contains(t, buf.String(), "error=")
}
