package bundler

// GoldenShell is the entry document every new workspace starts with. It is
// immutable in the VFS; generated code plugs in through src/main.js and the
// #app mount point.
const GoldenShell = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>Preview</title>
</head>
<body>
  <div id="app"></div>
  <script type="module" src="./src/main.js"></script>
</body>
</html>
`

// fallbackShell stands in when the shell entry is empty. The build must stay
// total, so a degenerate VFS still yields a loadable document.
const fallbackShell = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>Preview</title>
</head>
<body>
  <div id="app"></div>
  <script type="module" src="./src/main.js"></script>
</body>
</html>
`

// errorShim installs the sole error-surfacing channel for sandboxed code: a
// global handler that logs diagnostics and renders a fixed, non-interactive
// banner. Faults never propagate to the host application. The script avoids
// "<" so it survives fragment parsing verbatim.
const errorShim = `(function () {
  function banner(message) {
    var el = document.getElementById("__preview_error__");
    if (!el) {
      el = document.createElement("div");
      el.id = "__preview_error__";
      el.style.cssText =
        "position:fixed;top:0;left:0;right:0;z-index:2147483647;" +
        "background:#b91c1c;color:#fff;font:13px/1.5 monospace;" +
        "padding:8px 12px;white-space:pre-wrap;pointer-events:none;";
      document.body.appendChild(el);
    }
    el.textContent = message;
  }
  window.addEventListener("error", function (event) {
    var where = event.filename
      ? " (" + event.filename + ":" + event.lineno + ")"
      : "";
    console.error("[preview]", event.message, event.error);
    banner("Error: " + event.message + where);
  });
  window.addEventListener("unhandledrejection", function (event) {
    console.error("[preview]", event.reason);
    banner("Unhandled rejection: " + String(event.reason));
  });
})();`
