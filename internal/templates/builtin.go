package templates

// builtins returns the starter templates compiled into the binary. They
// exercise the fixed CDN registry the same way generated code does.
func builtins() []*Manifest {
	return []*Manifest{
		{
			ID:          "blank",
			Name:        "Blank",
			Description: "A bare entry module",
			Files: []ManifestFile{
				{
					Path:    "src/main.js",
					Content: "document.getElementById('app').textContent = 'Hello!';\n",
				},
			},
		},
		{
			ID:          "counter",
			Name:        "Counter",
			Description: "A preact counter with a confetti burst",
			Files: []ManifestFile{
				{
					Path: "src/main.js",
					Content: `import { h, render } from 'preact';
import { useState } from 'preact/hooks';
import htm from 'htm';
import confetti from 'canvas-confetti';

const html = htm.bind(h);

function App() {
  const [count, setCount] = useState(0);
  const bump = () => {
    setCount(count + 1);
    if ((count + 1) % 10 === 0) confetti();
  };
  return html` + "`" + `<main>
    <h1>${count}</h1>
    <button onClick=${bump}>+1</button>
  </main>` + "`" + `;
}

render(html` + "`" + `<${App} />` + "`" + `, document.getElementById('app'));
`,
				},
				{
					Path:    "src/style.css",
					Content: "main { font-family: sans-serif; text-align: center; margin-top: 4rem; }\nbutton { font-size: 1.25rem; padding: 0.5rem 1.5rem; }\n",
				},
			},
		},
	}
}
