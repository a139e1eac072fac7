package viz

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"

	"github.com/albums1001/albums/internal/network"
)

// compiledTemplate is parsed at init time to fail fast on template errors.
var compiledTemplate *template.Template

func init() {
	compiledTemplate = template.Must(template.New("viz").Parse(htmlTemplate))
}

// HTMLOptions configures HTML generation.
type HTMLOptions struct {
	Layout  string          // "preset", "force", "circle", or "grid"
	Title   string          // Page title
	Palette network.Palette // Colours used by click highlighting in the page
}

// DefaultOptions returns default HTML generation options.
func DefaultOptions() HTMLOptions {
	return HTMLOptions{
		Layout:  "preset",
		Title:   "Album Network",
		Palette: network.DefaultPalette(),
	}
}

// ValidLayouts lists the supported layout algorithm names.
var ValidLayouts = []string{"preset", "force", "circle", "grid"}

// GenerateHTML generates a self-contained HTML file for the graph visualization.
func GenerateHTML(graph *GraphData, opts HTMLOptions) (string, error) {
	if graph == nil {
		return "", fmt.Errorf("graph cannot be nil")
	}

	if err := validateLayout(opts.Layout); err != nil {
		return "", err
	}

	if graph.IsEmpty() {
		return generateEmptyHTML(), nil
	}

	graphJSON, err := graph.ToCytoscapeJSON()
	if err != nil {
		return "", err
	}

	paletteJSON, err := json.Marshal(newPagePalette(opts.Palette))
	if err != nil {
		return "", fmt.Errorf("marshaling palette: %w", err)
	}

	title := opts.Title
	if title == "" {
		title = DefaultOptions().Title
	}

	data := templateData{
		Title:       title,
		GraphJSON:   template.JS(graphJSON),
		PaletteJSON: template.JS(paletteJSON),
		Layout:      layoutToCytoscape(opts.Layout),
		Kind:        graph.Kind,
	}

	var buf bytes.Buffer
	if err := compiledTemplate.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// validateLayout checks if the layout option is valid.
func validateLayout(layout string) error {
	switch layout {
	case "", "preset", "force", "circle", "grid":
		return nil
	default:
		return fmt.Errorf("invalid layout %q: must be preset, force, circle, or grid", layout)
	}
}

// pagePalette is the part of the palette the page needs for click
// highlighting. The page applies the same rules as network.Highlighter.
type pagePalette struct {
	Highlight          string            `json:"highlight"`
	Connection         string            `json:"connection"`
	Lowlight           string            `json:"lowlight"`
	AlbumSize          float64           `json:"albumSize"`
	AlbumHighlightSize float64           `json:"albumHighlightSize"`
	AlbumLowlightSize  float64           `json:"albumLowlightSize"`
	GroupColor         string            `json:"groupColor"`
	GroupSize          float64           `json:"groupSize"`
	GroupHighlightSize float64           `json:"groupHighlightSize"`
	Edge               string            `json:"edge"`
	EdgeDefault        string            `json:"edgeDefault"`
	EdgeWidth          float64           `json:"edgeWidth"`
	EdgeHighlightWidth float64           `json:"edgeHighlightWidth"`
	Roles              map[string]string `json:"roles"`
}

func newPagePalette(p network.Palette) pagePalette {
	roles := make(map[string]string, len(p.RoleColors))
	for role, c := range p.RoleColors {
		roles[string(role)] = c
	}
	return pagePalette{
		Highlight:          p.AlbumHighlightColor,
		Connection:         p.AlbumHighlightConnectionColor,
		Lowlight:           p.AlbumLowlightColor,
		AlbumSize:          p.AlbumSize,
		AlbumHighlightSize: p.AlbumHighlightSize,
		AlbumLowlightSize:  p.AlbumLowlightSize,
		GroupColor:         p.GroupColor,
		GroupSize:          p.GroupSize,
		GroupHighlightSize: p.GroupHighlightSize,
		Edge:               p.ConnectionLowlightColor,
		EdgeDefault:        p.ConnectionDefaultColor,
		EdgeWidth:          p.EdgeWidth,
		EdgeHighlightWidth: p.EdgeHighlightWidth,
		Roles:              roles,
	}
}

// templateData holds data for the HTML template.
type templateData struct {
	Title       string
	GraphJSON   template.JS
	PaletteJSON template.JS
	Layout      string
	Kind        string
}

// layoutToCytoscape converts user-friendly layout names to Cytoscape.js layout algorithm names.
func layoutToCytoscape(layout string) string {
	switch layout {
	case "force":
		return "cose"
	case "circle":
		return "circle"
	case "grid":
		return "grid"
	default:
		return "preset"
	}
}

// generateEmptyHTML returns HTML for an empty graph state.
func generateEmptyHTML() string {
	return `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>Album Network - Empty</title>
  <style>
    body {
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
      display: flex;
      justify-content: center;
      align-items: center;
      height: 100vh;
      margin: 0;
      background: #f5f5f5;
    }
    .empty-state {
      text-align: center;
      color: #666;
    }
    .empty-state code {
      background: #e0e0e0;
      padding: 2px 6px;
      border-radius: 3px;
    }
  </style>
</head>
<body>
  <div class="empty-state">
    <h2>No graph data</h2>
    <p>No two albums in your library share a person or genre yet.</p>
    <p>Add albums to <code>.albums/albums.jsonl</code> and run <code>alb rebuild</code></p>
  </div>
</body>
</html>`
}

const htmlTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>{{.Title}}</title>
  <script src="https://unpkg.com/cytoscape@3/dist/cytoscape.min.js"></script>
  <style>
    * {
      box-sizing: border-box;
    }
    body {
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
      margin: 0;
      padding: 0;
      background: #f5f5f5;
    }
    #cy {
      width: 100%;
      height: 100vh;
      background: white;
    }
    #tooltip {
      position: absolute;
      display: none;
      background: white;
      border: 1px solid #ccc;
      border-radius: 4px;
      padding: 8px 12px;
      box-shadow: 0 2px 8px rgba(0,0,0,0.15);
      max-width: 320px;
      font-size: 13px;
      z-index: 1000;
      pointer-events: none;
    }
    #tooltip .head {
      font-weight: bold;
      margin-bottom: 4px;
    }
    #tooltip .line {
      color: #555;
      margin: 2px 0;
    }
  </style>
</head>
<body>
  <div id="cy"></div>
  <div id="tooltip"></div>
  <script>
    (function() {
      const graphData = {{.GraphJSON}};
      const palette = {{.PaletteJSON}};
      const layout = "{{.Layout}}";
      const kind = "{{.Kind}}";

      const cy = cytoscape({
        container: document.getElementById('cy'),
        elements: graphData,
        style: [
          {
            selector: 'node',
            style: {
              'background-color': 'data(color)',
              'shape': 'data(shape)',
              'width': 'data(size)',
              'height': 'data(size)',
              'border-width': 0
            }
          },
          {
            selector: 'node[type="album"][level="primary"]',
            style: {
              'label': 'data(label)',
              'font-size': '10px',
              'text-valign': 'bottom'
            }
          },
          {
            selector: 'edge',
            style: {
              'line-color': 'data(color)',
              'width': 'data(width)',
              'curve-style': 'straight'
            }
          }
        ],
        layout: {
          name: layout,
          animate: false,
          fit: true
        }
      });

      const tooltip = document.getElementById('tooltip');

      function escapeHtml(str) {
        if (!str) return '';
        return String(str).replace(/&/g, '&amp;')
                          .replace(/</g, '&lt;')
                          .replace(/>/g, '&gt;')
                          .replace(/"/g, '&quot;');
      }

      function showTooltip(evt) {
        const lines = evt.target.data('hover') || [];
        let html = '';
        lines.forEach(function(line, i) {
          html += '<div class="' + (i === 0 ? 'head' : 'line') + '">' + escapeHtml(line) + '</div>';
        });
        tooltip.innerHTML = html;
        tooltip.style.display = 'block';
        const pos = evt.renderedPosition || evt.position;
        tooltip.style.left = (pos.x + 15) + 'px';
        tooltip.style.top = (pos.y + 15) + 'px';
      }

      function roleColor(role) {
        return palette.roles[role] || palette.edgeDefault;
      }

      // Deselected styles come from the server's default render state.
      function restore() {
        cy.nodes().forEach(function(n) {
          n.data({color: n.data('defaultColor'), size: n.data('defaultSize'), active: false});
          if (n.data('type') === 'album') {
            n.data('level', 'default');
          }
        });
        cy.edges().forEach(function(e) {
          e.data({color: e.data('defaultColor'), width: e.data('defaultWidth')});
        });
      }

      // Same rules as the server-side highlighter.
      function select(id) {
        const album = cy.getElementById(id);
        if (album.empty() || album.data('type') !== 'album') {
          restore();
          return;
        }
        const groups = album.neighborhood('node[type="group"]');
        const direct = groups.neighborhood('node[type="album"]').not(album);

        cy.nodes('[type="album"]').forEach(function(n) {
          if (n.same(album)) {
            n.data({color: palette.highlight, size: palette.albumHighlightSize, level: 'primary', active: true});
          } else if (direct.contains(n)) {
            n.data({color: palette.connection, size: palette.albumSize, level: 'secondary', active: false});
          } else {
            n.data({color: palette.lowlight, size: palette.albumLowlightSize, level: 'lowlight', active: false});
          }
        });

        // A lit group takes the colour of its role on the selected album.
        const roleOnAlbum = {};
        album.connectedEdges().forEach(function(e) {
          roleOnAlbum[e.source().id()] = e.data('role');
        });
        cy.nodes('[type="group"]').forEach(function(n) {
          if (groups.contains(n)) {
            const color = kind === 'genre' ? palette.highlight : roleColor(roleOnAlbum[n.id()]);
            n.data({color: color, size: palette.groupHighlightSize, active: true});
          } else {
            n.data({color: palette.groupColor, size: palette.groupSize, active: false});
          }
        });

        // A lit edge takes the colour of its own role.
        cy.edges().forEach(function(e) {
          const lit = groups.contains(e.source()) && (e.target().same(album) || direct.contains(e.target()));
          if (lit) {
            const color = kind === 'genre' ? palette.edgeDefault : roleColor(e.data('role'));
            e.data({color: color, width: palette.edgeHighlightWidth});
          } else {
            e.data({color: palette.edge, width: palette.edgeWidth});
          }
        });
      }

      cy.on('mouseover', 'node', showTooltip);
      cy.on('mouseout', 'node', function() {
        tooltip.style.display = 'none';
      });

      cy.on('tap', 'node[type="album"]', function(evt) {
        select(evt.target.id());
      });

      cy.on('tap', function(evt) {
        if (evt.target === cy) {
          restore();
        }
      });
    })();
  </script>
</body>
</html>`
