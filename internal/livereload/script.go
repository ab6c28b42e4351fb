package livereload

import "html/template"

type scriptConfig struct {
	Path          string
	RetryInterval uint
	MaxRetries    uint
}

// The page reloads once the server comes back after the socket drops.
const script = `
  (() => {
    const socketUrl = "ws://" + location.host + "{{.Path}}";
    const retryInterval = {{.RetryInterval}};
    const maxRetries = {{.MaxRetries}};
    const ws = new WebSocket(socketUrl);
    ws.onclose = () => {
      let retries = 0;
      const reconnect = () => {
        if (++retries > maxRetries) {
          console.error("livereload: server did not come back");
          return;
        }
        const retry = new WebSocket(socketUrl);
        retry.onerror = () => setTimeout(reconnect, retryInterval);
        retry.onopen = () => location.reload();
      };
      reconnect();
    };
  })();
`

var scriptTemplate = template.Must(template.New("livereload").Parse(script))
