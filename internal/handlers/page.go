package handlers

import "html/template"

type pageData struct {
	Width      int
	Height     int
	SVG        template.HTML
	TipTop     int
	TipLeft    int
	Loaded     bool
	XSelection string
	YSelection string
}

var pageTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>D3 Times: health risks by state</title>
<style>
body { font-family: sans-serif; }
#scatter { width: {{.Width}}px; height: {{.Height}}px; }
.active { font-weight: bold; fill: #000; cursor: pointer; }
.inactive { font-weight: lighter; fill: #c9c9c9; cursor: pointer; }
.inactive:hover { fill: #000; }
.d3-tip { position: absolute; display: none; line-height: 1; padding: 12px; background: rgba(0, 0, 0, 0.8); color: #fff; border-radius: 4px; font-size: 12px; pointer-events: none; }
</style>
</head>
<body>
<div id="scatter" data-x="{{.XSelection}}" data-y="{{.YSelection}}">{{.SVG}}</div>
<div id="tooltip" class="d3-tip"></div>
{{if .Loaded}}<script>
(function () {
  const scatter = document.getElementById("scatter");
  const tip = document.getElementById("tooltip");
  const offsetTop = {{.TipTop}};
  const offsetLeft = {{.TipLeft}};

  function bind() {
    scatter.querySelectorAll("circle").forEach(function (c) {
      c.addEventListener("pointerenter", function (e) {
        tip.innerHTML = c.dataset.tip;
        tip.style.display = "block";
        tip.style.left = (e.pageX + offsetLeft) + "px";
        tip.style.top = (e.pageY + offsetTop - tip.offsetHeight) + "px";
      });
      c.addEventListener("pointerleave", function () {
        tip.style.display = "none";
      });
    });
    scatter.querySelectorAll("text[data-axis]").forEach(function (t) {
      t.addEventListener("click", function () {
        fetch("/api/selection/" + t.dataset.axis, {
          method: "POST",
          headers: { "Content-Type": "application/json" },
          body: JSON.stringify({ value: t.dataset.value })
        }).then(function (resp) {
          if (!resp.ok) {
            return resp.text().then(function (msg) { console.log(msg); });
          }
          return resp.text().then(function (svg) {
            tip.style.display = "none";
            scatter.innerHTML = svg;
            bind();
          });
        }).catch(function (err) { console.log(err); });
      });
    });
  }
  bind();
})();
</script>{{end}}
</body>
</html>
`))
