package document

import "html/template"

// pageTemplate is the Go html/template for the map document. Leaflet and
// the markercluster plugin are loaded from the unpkg CDN; the tile layer,
// marker set and bridge endpoint are filled in per render.
//
// All interaction listeners funnel through bridge.send, which serializes
// one JSON message per gesture onto the WebSocket when connected and queues
// it otherwise. The document announces load completion with a single
// mapReady message once the map and markers are in place.
var pageTemplate = template.Must(template.New("map").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0, user-scalable=no">
  <title>Map</title>
  <link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">
  <link rel="stylesheet" href="https://unpkg.com/leaflet.markercluster@1.5.3/dist/MarkerCluster.css">
  <link rel="stylesheet" href="https://unpkg.com/leaflet.markercluster@1.5.3/dist/MarkerCluster.Default.css">
  <script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
  <script src="https://unpkg.com/leaflet.markercluster@1.5.3/dist/leaflet.markercluster.js"></script>
  <style>html, body, #map { height: 100%; width: 100%; margin: 0; padding: 0; }</style>
</head>
<body>
  <div id="map"></div>
  <script>
  var bridge = {
    sock: null,
    queue: [],
    send: function (msg) {
      var data = JSON.stringify(msg);
      if (this.sock && this.sock.readyState === WebSocket.OPEN) {
        this.sock.send(data);
      } else {
        this.queue.push(data);
      }
    }
  };
{{if .HasBridge}}
  (function connect() {
    var sock = new WebSocket({{.BridgeURL}});
    sock.onopen = function () {
      bridge.sock = sock;
      bridge.queue.forEach(function (data) { sock.send(data); });
      bridge.queue = [];
    };
    sock.onmessage = function (ev) {
      var msg;
      try { msg = JSON.parse(ev.data); } catch (e) { return; }
      if (msg.type === 'reload') {
        location.reload();
      }
    };
  })();
{{end}}

  var map = L.map('map', { zoomControl: true });
  L.tileLayer({{.TileURL}}, {
    attribution: {{.Attribution}},
    maxZoom: 19
  }).addTo(map);

  var entries = {{.MarkersJSON}};
  var cluster = L.markerClusterGroup();

  entries.forEach(function (entry) {
    var opts = { draggable: entry.draggable };
    var ic = entry.icon;
    if (!ic.default) {
      if (ic.url) {
        opts.icon = L.icon({
          iconUrl: ic.url,
          iconSize: ic.size,
          iconAnchor: ic.anchor,
          popupAnchor: ic.popupAnchor,
          className: ic.className || ''
        });
      } else {
        opts.icon = L.divIcon({
          html: ic.svg,
          iconSize: ic.size,
          iconAnchor: ic.anchor,
          popupAnchor: ic.popupAnchor,
          className: ic.className || ''
        });
      }
    }

    var m = L.marker([entry.lat, entry.lng], opts);
    if (entry.popup) {
      m.bindPopup(entry.popup);
    }

    m.on('dragend', function (e) {
      var pos = e.target.getLatLng();
      var updated = Object.assign({}, entry.marker, {
        latitude: pos.lat,
        longitude: pos.lng
      });
      bridge.send({ type: 'markerDragEnd', marker: updated });
    });
    m.on('click', function () {
      bridge.send({ type: 'markerPress', marker: entry.marker });
    });
    m.on('mouseover', function (e) {
      e.target.setOpacity(0.6);
      bridge.send({ type: 'markerHoverStart', marker: entry.marker });
    });
    m.on('mouseout', function (e) {
      e.target.setOpacity(1.0);
      bridge.send({ type: 'markerHoverEnd', marker: entry.marker });
    });

    cluster.addLayer(m);
  });
  map.addLayer(cluster);

{{if .Fit}}
  map.fitBounds([[{{.SWLat}}, {{.SWLng}}], [{{.NELat}}, {{.NELng}}]], {
    padding: [{{.FitPadding}}, {{.FitPadding}}],
    maxZoom: {{.FitMaxZoom}}
  });
{{else}}
  map.setView([{{.CenterLat}}, {{.CenterLng}}], {{.Zoom}});
{{end}}

  bridge.send({ type: 'mapReady' });
  </script>
</body>
</html>`))
