package agent

// State is a step of the run state machine.
type State int

const (
	StateIdle State = iota
	StateConfigLoaded
	StateStatusLoaded
	StateReachabilityOk
	StateReachabilityFailed
	StateGatewayReconnected
	StateIPChecked
	StateDDNSUpdated
	StatePersisted
	StateTerminal
)

var stateNames = map[State]string{
	StateIdle:               "Idle",
	StateConfigLoaded:       "ConfigLoaded",
	StateStatusLoaded:       "StatusLoaded",
	StateReachabilityOk:     "ReachabilityOk",
	StateReachabilityFailed: "ReachabilityFailed",
	StateGatewayReconnected: "GatewayReconnected",
	StateIPChecked:          "IpChecked",
	StateDDNSUpdated:        "DdnsUpdated",
	StatePersisted:          "Persisted",
	StateTerminal:           "Terminal",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "Unknown"
}
