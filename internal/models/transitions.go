package models

// ContractAction - переход конечного автомата контракта
type ContractAction string

const (
	ContractActionAccept  ContractAction = "accept"
	ContractActionPickup  ContractAction = "pickup"
	ContractActionDeliver ContractAction = "deliver"
	ContractActionCancel  ContractAction = "cancel"
)

// PartyRole - роль стороны внутри контракта
type PartyRole string

const (
	PartySender  PartyRole = "sender"
	PartyCarrier PartyRole = "carrier"
	PartyAny     PartyRole = "any"
)

// TransitionRule описывает один разрешенный переход:
// из какого статуса, кем, куда и какой статус получает связанная заявка
type TransitionRule struct {
	To            ContractStatus
	Actor         PartyRole
	RequestStatus RequestStatus
}

// Таблица переходов. Отмена разрешена из любого нетерминального статуса,
// поэтому From для нее перечислен отдельно в CancellableFrom.
var contractTransitions = map[ContractAction]struct {
	From []ContractStatus
	Rule TransitionRule
}{
	ContractActionAccept: {
		From: []ContractStatus{ContractStatusProposed},
		Rule: TransitionRule{To: ContractStatusAccepted, Actor: PartySender, RequestStatus: RequestStatusAccepted},
	},
	ContractActionPickup: {
		From: []ContractStatus{ContractStatusAccepted},
		Rule: TransitionRule{To: ContractStatusPickedUp, Actor: PartyCarrier, RequestStatus: RequestStatusInTransit},
	},
	ContractActionDeliver: {
		From: []ContractStatus{ContractStatusPickedUp},
		Rule: TransitionRule{To: ContractStatusDelivered, Actor: PartySender, RequestStatus: RequestStatusDelivered},
	},
	ContractActionCancel: {
		From: []ContractStatus{ContractStatusProposed, ContractStatusAccepted, ContractStatusPickedUp},
		Rule: TransitionRule{To: ContractStatusCancelled, Actor: PartyAny, RequestStatus: RequestStatusCancelled},
	},
}

// TransitionFor возвращает правило перехода, если действие допустимо
// из текущего статуса контракта
func TransitionFor(action ContractAction, from ContractStatus) (TransitionRule, bool) {
	entry, ok := contractTransitions[action]
	if !ok {
		return TransitionRule{}, false
	}
	for _, s := range entry.From {
		if s == from {
			return entry.Rule, true
		}
	}
	return TransitionRule{}, false
}

// IsTerminal сообщает, что из статуса больше нет переходов
func (s ContractStatus) IsTerminal() bool {
	return s == ContractStatusDelivered || s == ContractStatusCancelled
}
