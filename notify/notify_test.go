package notify

import (
	"bufio"
	"context"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedRelay speaks just enough SMTP to accept one message and hands the
// DATA payload back over the returned channel
func scriptedRelay(t *testing.T) (host, port string, received <-chan string) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { listener.Close() })

	payload := make(chan string, 1)
	go func() {
		conn, err := listener.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		reader := bufio.NewReader(conn)
		conn.Write([]byte("220 test.local ESMTP\r\n"))
		for {
			line, err := reader.ReadString('\n')
			if err != nil {
				return
			}
			switch {
			case strings.HasPrefix(line, "EHLO"), strings.HasPrefix(line, "HELO"):
				conn.Write([]byte("250 test.local\r\n"))
			case strings.HasPrefix(line, "MAIL FROM"), strings.HasPrefix(line, "RCPT TO"):
				conn.Write([]byte("250 OK\r\n"))
			case strings.HasPrefix(line, "DATA"):
				conn.Write([]byte("354 End data with <CR><LF>.<CR><LF>\r\n"))
				var body strings.Builder
				for {
					dataLine, err := reader.ReadString('\n')
					if err != nil {
						return
					}
					if dataLine == ".\r\n" {
						break
					}
					body.WriteString(dataLine)
				}
				payload <- body.String()
				conn.Write([]byte("250 OK\r\n"))
			case strings.HasPrefix(line, "QUIT"):
				conn.Write([]byte("221 Bye\r\n"))
				return
			default:
				conn.Write([]byte("500 Unrecognized\r\n"))
			}
		}
	}()

	host, port, err = net.SplitHostPort(listener.Addr().String())
	require.NoError(t, err)
	return host, port, payload
}

func TestSMTPNotifierSend(t *testing.T) {
	host, port, received := scriptedRelay(t)
	notifier := NewSMTPNotifier(SMTPConfig{
		Host: host,
		Port: port,
		From: "noreply@example.org",
	})

	err := notifier.Send(context.Background(), Message{
		Template:  TemplateContactReceived,
		Recipient: "admin@example.org",
		Subject:   "Nouveau message de contact",
		Context:   map[string]string{"name": "Awa Diop"},
	})
	require.NoError(t, err)

	select {
	case body := <-received:
		assert.Contains(t, body, "To: admin@example.org")
		assert.Contains(t, body, "Subject: Nouveau message de contact")
		assert.Contains(t, body, "["+TemplateContactReceived+"]")
		assert.Contains(t, body, "Awa Diop")
	case <-time.After(2 * time.Second):
		t.Fatal("relay never received the message body")
	}
}

func TestSMTPNotifierHungRelay(t *testing.T) {
	// Accepts the connection but never sends the SMTP greeting
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { listener.Close() })
	go func() {
		conn, err := listener.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		time.Sleep(10 * time.Second)
	}()

	host, port, err := net.SplitHostPort(listener.Addr().String())
	require.NoError(t, err)

	notifier := NewSMTPNotifier(SMTPConfig{
		Host:    host,
		Port:    port,
		From:    "noreply@example.org",
		Timeout: 200 * time.Millisecond,
	})

	start := time.Now()
	err = notifier.Send(context.Background(), Message{
		Template:  TemplateMemberCreated,
		Recipient: "membre@example.org",
		Subject:   "Demande reçue",
	})
	require.Error(t, err)
	assert.Less(t, time.Since(start), 3*time.Second)
}
