package use_cases

import (
	"ticketpay/internal/application/dto"
	"ticketpay/internal/domain/entities"
	valueobjects "ticketpay/internal/domain/value_objects"
)

func mapTicketResource(ticket entities.Ticket) dto.TicketResource {
	var reportReason *string
	if ticket.ReportReason != nil {
		value := ticket.ReportReason.String()
		reportReason = &value
	}

	return dto.TicketResource{
		ID:               ticket.ID,
		TicketID:         ticket.DisplayID(),
		Status:           ticket.Status.String(),
		Amount:           valueobjects.FormatAmountMinor(ticket.AmountMinor),
		TokenType:        ticket.TokenType.String(),
		FacebookName:     ticket.FacebookName,
		Game:             ticket.Game,
		GameID:           ticket.GameID,
		PaymentMethod:    ticket.PaymentMethod,
		PaymentTag:       ticket.PaymentTag,
		AccountName:      ticket.AccountName,
		ImagePath:        ticket.ImagePath,
		CompletionImages: ticket.CompletionImages,
		PaymentDetails:   ticket.PaymentDetails,
		DomainID:         ticket.DomainID,
		ChatGroupID:      ticket.ChatGroupID,
		FulfillerID:      ticket.FulfillerID,
		ReportReason:     reportReason,
		CreatedAt:        ticket.CreatedAt,
		CompletedAt:      ticket.CompletedAt,
	}
}

func mapTicketResources(tickets []entities.Ticket) []dto.TicketResource {
	out := make([]dto.TicketResource, 0, len(tickets))
	for _, ticket := range tickets {
		out = append(out, mapTicketResource(ticket))
	}

	return out
}

func mapWalletResource(wallet entities.Wallet) dto.WalletResource {
	address := wallet.Address
	if address != "" {
		if formatted, appErr := valueobjects.FormatAddressForResponse(address); appErr == nil {
			address = formatted
		}
	}

	return dto.WalletResource{
		ID:        wallet.ID,
		UserID:    wallet.UserID,
		Type:      wallet.Type.String(),
		TokenType: wallet.TokenType.String(),
		Balance:   valueobjects.FormatAmountMinor(wallet.BalanceMinor),
		Address:   address,
		CreatedAt: wallet.CreatedAt,
		UpdatedAt: wallet.UpdatedAt,
	}
}

func mapTransactionResource(transaction entities.CryptoTransaction) dto.TransactionResource {
	return dto.TransactionResource{
		ID:              transaction.ID,
		TransactionType: string(transaction.TransactionType),
		Status:          string(transaction.Status),
		Amount:          valueobjects.FormatAmountMinor(transaction.AmountMinor),
		TokenType:       transaction.TokenType.String(),
		TransactionHash: transaction.TransactionHash,
		AddressFrom:     transaction.AddressFrom,
		AddressTo:       transaction.AddressTo,
		UserIDFrom:      transaction.UserIDFrom,
		UserIDTo:        transaction.UserIDTo,
		Description:     transaction.Description,
		CreatedAt:       transaction.CreatedAt,
	}
}

func mapUserResource(user entities.User) dto.UserResource {
	return dto.UserResource{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
	}
}

func mapSettingsResource(setting entities.Setting) dto.SettingsResource {
	return dto.SettingsResource{
		LowBalanceThreshold: valueobjects.FormatAmountMinor(setting.LowBalanceThreshold),
		SoundAlertsEnabled:  setting.SoundAlertsEnabled,
		NotificationsChatID: setting.NotificationsChatID,
	}
}

func mapWithdrawRequestResource(request entities.WithdrawRequest) dto.WithdrawRequestResource {
	toAddress := request.ToAddress
	if formatted, appErr := valueobjects.FormatAddressForResponse(toAddress); appErr == nil {
		toAddress = formatted
	}

	return dto.WithdrawRequestResource{
		ID:         request.ID,
		Amount:     valueobjects.FormatAmountMinor(request.AmountMinor),
		ToAddress:  toAddress,
		Status:     string(request.Status),
		CreatedAt:  request.CreatedAt,
		ReviewedAt: request.ReviewedAt,
	}
}

func listMeta(total int64, page, limit int) dto.ListMeta {
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}

	return dto.ListMeta{
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}
}
