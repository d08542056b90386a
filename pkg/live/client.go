package live

// page is the host page. The client keeps a map from node id to DOM node,
// with id 1 bound to the root element, and replays each frame in order.
const page = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>rendr</title></head>
<body>
<div id="rendr-root"></div>
<script>
(function () {
  var nodes = new Map([[1, document.getElementById("rendr-root")]]);
  var listeners = new Map();
  var proto = location.protocol === "https:" ? "wss://" : "ws://";
  var ws = new WebSocket(proto + location.host + "/ws");

  function send(id, type, e) {
    var msg = { type: "event", id: id, event: type };
    if (e.target && "value" in e.target) msg.value = String(e.target.value);
    if (e.key) msg.key = e.key;
    ws.send(JSON.stringify(msg));
  }

  var apply = {
    create_element: function (op) { nodes.set(op.id, document.createElement(op.tag)); },
    create_text: function (op) { nodes.set(op.id, document.createTextNode(op.text || "")); },
    set_text: function (op, n) { n.nodeValue = op.text || ""; },
    set_element_text: function (op, n) {
      n.textContent = op.text || "";
      if (op.child) nodes.set(op.child, n.firstChild);
    },
    insert: function (op, n) {
      var anchor = op.anchor ? nodes.get(op.anchor) : null;
      nodes.get(op.parent).insertBefore(n, anchor);
    },
    remove: function (op, n) { n.remove(); nodes.delete(op.id); },
    set_attr: function (op, n) { n.setAttribute(op.name, op.value); },
    remove_attr: function (op, n) { n.removeAttribute(op.name); },
    set_prop: function (op, n) { n[op.name] = op.value; },
    set_class: function (op, n) { n.className = op.value || ""; },
    listen: function (op, n) {
      var fn = function (e) {
        if (op.name === "submit") e.preventDefault();
        send(op.id, op.name, e);
      };
      listeners.set(op.id + ":" + op.name, fn);
      n.addEventListener(op.name, fn);
    },
    unlisten: function (op, n) {
      var key = op.id + ":" + op.name;
      n.removeEventListener(op.name, listeners.get(key));
      listeners.delete(key);
    }
  };

  ws.onmessage = function (msg) {
    var frame = JSON.parse(msg.data);
    if (frame.type === "error") { console.warn("rendr:", frame.error); return; }
    frame.ops.forEach(function (op) { apply[op.op](op, nodes.get(op.id)); });
  };
})();
</script>
</body>
</html>
`
