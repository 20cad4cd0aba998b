package custmqtt

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/url"
	"time"

	"github.com/CE-Thesis-2023/infiniti/internal/configs"
	custerror "github.com/CE-Thesis-2023/infiniti/internal/error"
	"github.com/CE-Thesis-2023/infiniti/internal/logger"

	"github.com/eclipse/paho.golang/autopaho"
	"github.com/eclipse/paho.golang/paho"
	"go.uber.org/zap"
)

var client *autopaho.ConnectionManager

// InitClient connects the process-wide MQTT client and blocks until the first
// connection is up.
func InitClient(ctx context.Context, options ...ClientOptioner) {
	cm, err := NewClient(ctx, options...)
	if err != nil {
		logger.SFatal("InitClient: MQTT connection failed", zap.Error(err))
		return
	}
	client = cm
}

func Client() *autopaho.ConnectionManager {
	return client
}

func StopClient(ctx context.Context) {
	if client == nil {
		return
	}
	if err := client.Disconnect(ctx); err != nil {
		logger.SError("StopClient: MQTT disconnect failed", zap.Error(err))
	}
}

func NewClient(ctx context.Context, options ...ClientOptioner) (*autopaho.ConnectionManager, error) {
	opts := &ClientOptions{}
	for _, opt := range options {
		opt(opts)
	}

	globalConfigs := opts.globalConfigs
	if globalConfigs == nil || len(globalConfigs.Host) == 0 {
		return nil, custerror.FormatInvalidArgument("NewClient: MQTT broker host is not configured")
	}

	connUrl := brokerUrl(globalConfigs)
	router := paho.NewStandardRouter()
	if opts.register != nil {
		opts.register(router)
	}

	clientConfigs := autopaho.ClientConfig{
		KeepAlive:         20,
		ConnectRetryDelay: time.Second * 5,
		ConnectTimeout:    time.Second * 2,
		BrokerUrls: []*url.URL{
			connUrl,
		},
		ClientConfig: paho.ClientConfig{
			ClientID: opts.clientId,
			Router:   router,
		},
	}

	if globalConfigs.TlsEnabled {
		clientConfigs.TlsCfg = makeTlsConfigs(globalConfigs)
	}

	if globalConfigs.HasAuth() {
		clientConfigs.SetUsernamePassword(globalConfigs.Username, []byte(globalConfigs.Password))
	}

	if opts.reconCallback != nil {
		clientConfigs.OnConnectionUp = opts.reconCallback
	}

	if opts.connErrCallback != nil {
		clientConfigs.OnConnectError = opts.connErrCallback
	}

	if opts.clientErr != nil {
		clientConfigs.ClientConfig.OnClientError = opts.clientErr
	}

	if opts.serverDisconnect != nil {
		clientConfigs.ClientConfig.OnServerDisconnect = opts.serverDisconnect
	}

	logger.SInfo("connecting to MQTT broker", zap.String("url", connUrl.String()))
	connManager, err := autopaho.NewConnection(ctx, clientConfigs)
	if err != nil {
		return nil, err
	}

	if err := connManager.AwaitConnection(ctx); err != nil {
		return nil, err
	}

	return connManager, nil
}

func brokerUrl(globalConfigs *configs.EventStoreConfigs) *url.URL {
	connUrl := &url.URL{}
	if globalConfigs.TlsEnabled {
		connUrl.Scheme = "tls"
	} else {
		connUrl.Scheme = "mqtt"
	}
	connUrl.Host = globalConfigs.Host
	if globalConfigs.Port > 0 {
		connUrl.Host = fmt.Sprintf("%s:%d", globalConfigs.Host, globalConfigs.Port)
	}
	return connUrl
}

func makeTlsConfigs(globalConfigs *configs.EventStoreConfigs) *tls.Config {
	return &tls.Config{
		ServerName: globalConfigs.Host,
		MinVersion: tls.VersionTLS12,
	}
}

// Publisher sends payloads through a connection manager at a fixed QoS.
type Publisher struct {
	cm  func() *autopaho.ConnectionManager
	qos byte
}

func NewPublisher(cm *autopaho.ConnectionManager, qos byte) *Publisher {
	return &Publisher{
		cm:  func() *autopaho.ConnectionManager { return cm },
		qos: qos,
	}
}

// NewGlobalPublisher publishes through the client set up by InitClient,
// looked up on every call.
func NewGlobalPublisher(qos byte) *Publisher {
	return &Publisher{cm: Client, qos: qos}
}

func (p *Publisher) Publish(ctx context.Context, topic string, payload []byte) error {
	cm := p.cm()
	if cm == nil {
		return custerror.FormatUnavailable("Publish: MQTT client is not connected")
	}
	if _, err := cm.Publish(ctx, &paho.Publish{
		Topic:   topic,
		QoS:     p.qos,
		Payload: payload,
	}); err != nil {
		logger.SError("Publish: MQTT publish failed",
			zap.String("topic", topic),
			zap.Error(err))
		return err
	}
	return nil
}

type ClientOptions struct {
	globalConfigs    *configs.EventStoreConfigs
	clientId         string
	reconCallback    func(cm *autopaho.ConnectionManager, connack *paho.Connack)
	connErrCallback  func(err error)
	serverDisconnect func(d *paho.Disconnect)
	clientErr        func(err error)
	register         RouterRegister
}

type ClientOptioner func(options *ClientOptions)

type RouterRegister func(router *paho.StandardRouter)

func WithClientGlobalConfigs(configs *configs.EventStoreConfigs) ClientOptioner {
	return func(options *ClientOptions) {
		options.globalConfigs = configs
	}
}

func WithClientId(id string) ClientOptioner {
	return func(options *ClientOptions) {
		options.clientId = id
	}
}

func WithOnReconnection(cb func(cm *autopaho.ConnectionManager, connack *paho.Connack)) ClientOptioner {
	return func(options *ClientOptions) {
		options.reconCallback = cb
	}
}

func WithOnConnectError(cb func(err error)) ClientOptioner {
	return func(options *ClientOptions) {
		options.connErrCallback = cb
	}
}

func WithOnServerDisconnect(cb func(d *paho.Disconnect)) ClientOptioner {
	return func(options *ClientOptions) {
		options.serverDisconnect = cb
	}
}

func WithClientError(cb func(err error)) ClientOptioner {
	return func(options *ClientOptions) {
		options.clientErr = cb
	}
}

func WithHandlerRegister(cb RouterRegister) ClientOptioner {
	return func(options *ClientOptions) {
		options.register = cb
	}
}
