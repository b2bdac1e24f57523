package handler

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/safeops/payloadeye/model"
)

const authorizerName = "20210418-authorizer/Authorizer"

// Permissions reports authorizer role changes: any method with "Role" in its
// name, with action ids under roles (list) or role (scalar), resolved to the
// function paths they authorize.
func Permissions(env *Env, payload *model.Payload, tx *model.Transaction, txIndex int) (*model.ReportRow, error) {
	if !tx.HasInputs() {
		return nil, nil
	}
	function := tx.MethodName()
	if !strings.Contains(function, "Role") {
		return nil, nil
	}
	chain := payload.ChainName()
	if chain == "" {
		logrus.Warnf("chain name not found for chain id %s, cannot parse role change", payload.ChainID)
		return nil, nil
	}

	actionIDs := tx.InputList("roles")
	if len(actionIDs) == 0 {
		if role := tx.Input("role"); role != "" {
			actionIDs = []string{role}
		}
	}
	if len(actionIDs) == 0 {
		logrus.Warnf("function %s on tx %d in %s carries no roles", function, txIndex, payload.FileName)
		return nil, nil
	}

	toString := "!!NOT-FOUND??"
	if toName := env.Book.NameOf(chain, tx.To); toName == authorizerName {
		toString = "Authorizer"
	} else if toName != "" {
		toString = fmt.Sprintf("!!%s??", toName)
	}

	callerAddress := tx.Input("account")
	callerName := "!!NOT FOUND!!"
	if name := env.Book.NameOf(chain, callerAddress); name != "" {
		callerName = name
	}

	fxPaths := []string{}
	for _, actionID := range actionIDs {
		paths, err := env.Perms.PathsByActionID(chain, actionID)
		if err != nil {
			return nil, fmt.Errorf("resolve action id %s on %s is err: %v", actionID, chain, err)
		}
		// An action id the artifact does not know authorizes nothing a
		// signer can review. Stop the run rather than render a blank
		// permission list for a possibly typo'd role hash.
		if len(paths) == 0 {
			return nil, fmt.Errorf("action id %s has no entry in the %s permissions artifact", actionID, chain)
		}
		fxPaths = append(fxPaths, paths...)
	}

	row := model.ReportRow{Handler: HandlerPermissions, TxIndex: txIndex}
	row.Add("function", fmt.Sprintf("%s/%s", toString, function)).
		Add("chain", chain).
		Add("caller_name", callerName).
		Add("caller_address", callerAddress).
		Add("fx_paths", strings.Join(fxPaths, "\n")).
		Add("action_ids", strings.Join(actionIDs, "\n")).
		Add("bip", payload.BIPNumber(tx))
	return &row, nil
}
