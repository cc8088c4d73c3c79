package usecase

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
)

// PageWriter materializes the static chart page next to the public
// history document. The page is written once and never overwritten, so
// manual edits survive later invocations.
type PageWriter struct {
	path        string
	itemName    string
	unit        string
	historyFile string
}

func NewPageWriter(path, historyPath, itemName, unit string) *PageWriter {
	return &PageWriter{
		path:        path,
		itemName:    itemName,
		unit:        unit,
		historyFile: filepath.Base(historyPath),
	}
}

// Ensure writes the chart page if it does not exist yet.
func (w *PageWriter) Ensure() error {
	if _, err := os.Stat(w.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat page: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(w.path), 0o755); err != nil {
		return fmt.Errorf("mkdir page dir: %w", err)
	}

	f, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("create page: %w", err)
	}
	defer f.Close()

	data := struct {
		Name        string
		Unit        string
		HistoryFile string
	}{Name: w.itemName, Unit: w.unit, HistoryFile: w.historyFile}

	if err := pageTemplate.Execute(f, data); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}

var pageTemplate = template.Must(template.New("page").Parse(`<!doctype html>
<html>
<head>
  <meta charset="utf-8">
  <title>{{.Name}} — {{.Unit}}</title>
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <script src="https://cdn.jsdelivr.net/npm/chart.js"></script>
  <style>
    body { font-family: system-ui, sans-serif; margin: 24px; background:#0b0b10; color:#eaeaea; }
    .card { max-width: 900px; margin:auto; padding:20px; background:#151523; border-radius:16px; box-shadow:0 8px 24px rgba(0,0,0,.35); }
    h1 { margin-top:0; font-weight:700; }
    .muted { color:#a0a0b0; font-size:14px; }
    canvas { width:100%; height:420px; }
    a { color:#8ab4ff; }
  </style>
</head>
<body>
  <div class="card">
    <h1>{{.Name}} <span class="muted">({{.Unit}})</span></h1>
    <div id="price" class="muted">loading…</div>
    <canvas id="chart"></canvas>
  </div>
  <script>
    async function run() {
      const r = await fetch('{{.HistoryFile}}?ts=' + Date.now());
      const data = await r.json();
      const labels = data.history.map(p => p.date);
      const prices = data.history.map(p => p.price);
      document.getElementById('price').textContent =
        "Latest: " + prices.at(-1) + " {{.Unit}} (" + labels.at(-1) + ")";
      new Chart(document.getElementById('chart'), {
        type: 'line',
        data: { labels, datasets: [{ label: '{{.Name}}', data: prices }] },
        options: {
          responsive: true,
          elements: { point: { radius: 2 } },
          tension: 0.25,
          scales: { y: { beginAtZero: false } }
        }
      });
    }
    run();
  </script>
</body>
</html>
`))
