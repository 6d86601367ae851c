// Package events publica eventos de facturación hacia un broker MQTT.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/jhoicas/Rental-api/internal/application/billing"
)

// MQTTConfig datos de conexión al broker.
type MQTTConfig struct {
	Broker      string // host:port
	Username    string
	Password    string
	ClientID    string
	TopicPrefix string
	// ConnectWait espera máxima de la primera conexión; luego sigue reintentando en segundo plano.
	ConnectWait time.Duration
}

// DefaultTopicPrefix prefijo usado cuando la configuración no define uno.
const DefaultTopicPrefix = "rental"

const (
	defaultConnectWait    = 5 * time.Second
	defaultPublishTimeout = 5 * time.Second
)

// MQTTPublisher implementa billing.InvoicePublisher.
type MQTTPublisher struct {
	client         mqtt.Client
	topicPrefix    string
	publishTimeout time.Duration
}

var _ billing.InvoicePublisher = (*MQTTPublisher)(nil)

// NewMQTTPublisher conecta al broker. Si el broker no responde dentro de ConnectWait el
// publicador se devuelve igual (Connected() == false) y paho reintenta en segundo plano.
func NewMQTTPublisher(cfg MQTTConfig) (*MQTTPublisher, error) {
	if cfg.Broker == "" {
		return nil, fmt.Errorf("mqtt: broker requerido")
	}
	clientID := cfg.ClientID
	if clientID == "" {
		clientID = "rental-api"
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(brokerURL(cfg.Broker))
	opts.SetClientID(clientID)
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectTimeout(10 * time.Second)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
	}
	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}

	wait := cfg.ConnectWait
	if wait <= 0 {
		wait = defaultConnectWait
	}

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.WaitTimeout(wait) && token.Error() != nil {
		return nil, fmt.Errorf("mqtt: conectar al broker: %w", token.Error())
	}
	return newPublisher(client, cfg.TopicPrefix), nil
}

func newPublisher(client mqtt.Client, prefix string) *MQTTPublisher {
	if prefix == "" {
		prefix = DefaultTopicPrefix
	}
	return &MQTTPublisher{
		client:         client,
		topicPrefix:    strings.TrimSuffix(prefix, "/"),
		publishTimeout: defaultPublishTimeout,
	}
}

// WithPublishTimeout espera máxima por la confirmación QoS 1 (d <= 0 no se aplica).
func (p *MQTTPublisher) WithPublishTimeout(d time.Duration) *MQTTPublisher {
	if d > 0 {
		p.publishTimeout = d
	}
	return p
}

// Connected hay sesión activa con el broker.
func (p *MQTTPublisher) Connected() bool {
	return p.client != nil && p.client.IsConnectionOpen()
}

// NewMQTTPublisherWithClient usa un cliente ya creado (tests, clientes compartidos).
func NewMQTTPublisherWithClient(client mqtt.Client, prefix string) *MQTTPublisher {
	return newPublisher(client, prefix)
}

// InvoiceTopic <prefix>/invoices/<contractCode>. Los comodines MQTT del código se reemplazan.
func InvoiceTopic(prefix, contractCode string) string {
	code := strings.NewReplacer("/", "_", "+", "_", "#", "_").Replace(contractCode)
	if code == "" {
		code = "unknown"
	}
	return prefix + "/invoices/" + code
}

// PublishInvoiceIssued publica el evento con QoS 1. Vuelve al confirmar el broker, al
// cancelarse ctx o al vencer publishTimeout, lo que ocurra primero.
func (p *MQTTPublisher) PublishInvoiceIssued(ctx context.Context, evt billing.InvoiceIssuedEvent) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("mqtt: serializar evento: %w", err)
	}
	timer := time.NewTimer(p.publishTimeout)
	defer timer.Stop()

	token := p.client.Publish(InvoiceTopic(p.topicPrefix, evt.ContractCode), 1, false, payload)
	select {
	case <-token.Done():
		if err := token.Error(); err != nil {
			return fmt.Errorf("mqtt: publicar: %w", err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return fmt.Errorf("mqtt: publicar: sin confirmación del broker en %s", p.publishTimeout)
	}
}

// Close desconecta del broker.
func (p *MQTTPublisher) Close() {
	if p.client != nil && p.client.IsConnected() {
		p.client.Disconnect(250)
	}
}

// NopPublisher descarta los eventos; se usa cuando MQTT está deshabilitado.
type NopPublisher struct{}

// PublishInvoiceIssued no hace nada.
func (NopPublisher) PublishInvoiceIssued(context.Context, billing.InvoiceIssuedEvent) error {
	return nil
}

func brokerURL(broker string) string {
	if strings.Contains(broker, "://") {
		return broker
	}
	return "tcp://" + broker
}
