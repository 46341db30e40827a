package util

import (
	"fmt"
	"net"
	"os/exec"
	"runtime"
)

// OpenBrowser abre el navegador por defecto.
// Compatible con Windows 7/10/11, macOS y Linux.
func OpenBrowser(url string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "windows":
		// rundll32 es más estable que "cmd /c start" en Windows 7
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}

	return cmd.Start()
}

// OpenBrowserWithFallback intenta abrir el navegador con planes alternativos
// si el método principal falla.
func OpenBrowserWithFallback(url string) error {
	err := OpenBrowser(url)
	if err == nil {
		return nil
	}

	switch runtime.GOOS {
	case "windows":
		return exec.Command("explorer", url).Start()
	case "linux":
		browsers := []string{"google-chrome", "firefox", "chromium-browser", "sensible-browser"}
		for _, browser := range browsers {
			if err := exec.Command(browser, url).Start(); err == nil {
				return nil
			}
		}
	}

	return err
}

// FindAvailablePort busca un puerto libre empezando en startPort.
// Si ninguno de los siguientes 20 está libre devuelve startPort.
func FindAvailablePort(startPort int) int {
	for port := startPort; port < startPort+20; port++ {
		ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
		if err != nil {
			continue
		}
		ln.Close()
		return port
	}
	return startPort
}
