package events_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Rental-api/internal/application/billing"
	"github.com/jhoicas/Rental-api/internal/infrastructure/events"
)

func TestInvoiceTopic(t *testing.T) {
	tests := []struct {
		prefix, code, want string
	}{
		{"rental", "CTR-001", "rental/invoices/CTR-001"},
		{"acme/rental", "CTR/7", "acme/rental/invoices/CTR_7"},
		{"rental", "a+b#", "rental/invoices/a_b_"},
		{"rental", "", "rental/invoices/unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, events.InvoiceTopic(tt.prefix, tt.code))
	}
}

func TestNewMQTTPublisher_SinBroker(t *testing.T) {
	_, err := events.NewMQTTPublisher(events.MQTTConfig{})
	assert.Error(t, err)
}

func TestNopPublisher(t *testing.T) {
	var p billing.InvoicePublisher = events.NopPublisher{}
	assert.NoError(t, p.PublishInvoiceIssued(context.Background(), billing.InvoiceIssuedEvent{}))
}

func TestInvoiceIssuedEvent_JSON(t *testing.T) {
	b, err := json.Marshal(billing.InvoiceIssuedEvent{Type: billing.EventInvoiceIssued, ContractCode: "CTR-001"})
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	assert.Equal(t, "invoice.issued", m["type"])
	assert.Equal(t, "CTR-001", m["contract_code"])
}

// unreachableClient cliente paho con reconexión automática contra un puerto cerrado.
func unreachableClient() mqtt.Client {
	opts := mqtt.NewClientOptions()
	opts.AddBroker("tcp://127.0.0.1:1")
	opts.SetClientID("rental-test")
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectRetryInterval(50 * time.Millisecond)
	opts.SetConnectTimeout(100 * time.Millisecond)
	return mqtt.NewClient(opts)
}

func TestPublishInvoiceIssued_BrokerCaidoNoBloquea(t *testing.T) {
	client := unreachableClient()
	client.Connect()
	pub := events.NewMQTTPublisherWithClient(client, "rental").WithPublishTimeout(200 * time.Millisecond)
	defer pub.Close()

	done := make(chan error, 1)
	go func() {
		done <- pub.PublishInvoiceIssued(context.Background(), billing.InvoiceIssuedEvent{ContractCode: "CTR-001"})
	}()

	select {
	case err := <-done:
		assert.Error(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("la publicación quedó esperando al broker")
	}
}

func TestNewMQTTPublisher_BrokerCaidoNoBloqueaArranque(t *testing.T) {
	type result struct {
		pub *events.MQTTPublisher
		err error
	}
	done := make(chan result, 1)
	go func() {
		pub, err := events.NewMQTTPublisher(events.MQTTConfig{
			Broker:      "127.0.0.1:1",
			ClientID:    "rental-test-start",
			ConnectWait: 100 * time.Millisecond,
		})
		done <- result{pub, err}
	}()

	select {
	case r := <-done:
		require.NoError(t, r.err)
		require.NotNil(t, r.pub)
		assert.False(t, r.pub.Connected())
		r.pub.Close()
	case <-time.After(3 * time.Second):
		t.Fatal("NewMQTTPublisher quedó esperando al broker")
	}
}
