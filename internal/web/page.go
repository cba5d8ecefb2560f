package web

const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>SSS Jewelry Calculator</title>
<style>
  body { font-family: -apple-system, sans-serif; background: #f9fafb; color: #111827; margin: 0; padding: 24px; }
  h1 { background: linear-gradient(135deg, #1e3a8a, #1d4ed8); color: #fff; padding: 16px 20px; border-radius: 12px; }
  section { background: #fff; border-radius: 12px; padding: 16px 20px; margin: 16px 0; box-shadow: 0 1px 3px rgba(0,0,0,.1); }
  table { border-collapse: collapse; width: 100%; }
  th, td { text-align: left; padding: 6px 10px; border-bottom: 1px solid #e5e7eb; }
  #events div { font-family: monospace; font-size: 12px; color: #6b7280; padding: 2px 0; }
</style>
</head>
<body>
<h1>SSS Jewelry Calculator</h1>
<section><h2>Daily Prices</h2><table id="prices"></table></section>
<section><h2>Making Charges</h2><table id="wages"></table></section>
<section><h2>History</h2><table id="history"></table></section>
<section><h2>Live Events</h2><div id="events"></div></section>
<script>
async function loadTable(url, el, render) {
  const res = await fetch(url);
  const data = await res.json();
  document.getElementById(el).innerHTML = render(data);
}
function refresh() {
  loadTable('/api/prices', 'prices', p => Object.entries(p).map(
    ([k, v]) => '<tr><th>' + k + '</th><td>' + v + '</td></tr>').join(''));
  loadTable('/api/wages', 'wages', ws => ws.map(
    w => '<tr><td>' + w.sr_no + '</td><td>' + w.label + '</td><td>' + w.rate + '</td></tr>').join(''));
  loadTable('/api/history', 'history', hs => hs.map(
    h => '<tr><td>' + h.timestamp + '</td><td>' + h.material + ' ' + h.weight + 'g</td><td>' + h.total + '</td></tr>').join(''));
}
refresh();
const stream = new EventSource('/events/stream');
stream.addEventListener('session', e => {
  const rec = JSON.parse(e.data);
  const line = document.createElement('div');
  line.textContent = rec.at + ' ' + rec.kind;
  document.getElementById('events').prepend(line);
  refresh();
});
</script>
</body>
</html>`
