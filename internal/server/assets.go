package server

// indexHTML is the static viewer page served for GET / (spec §6.3).
// It is a minimal OpenLayers-backed map view rather than a full asset
// pipeline, since no frontend build tooling appears anywhere in the
// retrieved corpus to ground one on.
var indexHTML = []byte(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>railmap</title>
  <link rel="stylesheet" href="/ol.css">
  <style>html,body,#map{height:100%;margin:0}</style>
</head>
<body>
  <div id="map"></div>
  <script src="/ol.js"></script>
  <script>
    new ol.Map({
      target: 'map',
      layers: [new ol.layer.Tile({
        source: new ol.source.XYZ({url: '/{z}/{x}/{y}.png'})
      })],
      view: new ol.View({center: [0, 0], zoom: 2})
    });
  </script>
</body>
</html>
`)

// staticAssets holds the pass-through static files named in spec §6.3
// (/ol.js, /ol.css). These are placeholders for the real OpenLayers
// distribution files an operator drops alongside the binary; no
// frontend bundler is part of this module's scope.
var staticAssets = map[string][]byte{
	"ol.js":  []byte("// placeholder: serve the real OpenLayers build from this path\n"),
	"ol.css": []byte("/* placeholder: serve the real OpenLayers stylesheet from this path */\n"),
}
